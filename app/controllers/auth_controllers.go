package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (h *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}
	session, err := h.service.Login(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(session)
}

func (h *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	session, err := h.service.Register(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(session)
}

func (h *AuthController) Refresh(c *ctx.Context) {
	var in services.RefreshInput
	if !c.BindJSON(&in) {
		return
	}
	tokens, err := h.service.Refresh(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(tokens)
}

func (h *AuthController) ForgotPassword(c *ctx.Context) {
	var in services.ForgotPasswordInput
	if !c.BindJSON(&in) {
		return
	}
	if err := h.service.ForgotPassword(c.Context(), in); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Reset password link sent to email")
}

func (h *AuthController) ChangePassword(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	var in services.ChangePasswordInput
	if !c.BindJSON(&in) {
		return
	}
	if err := h.service.ChangePassword(c.Context(), uid, in); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Password changed")
}

func (h *AuthController) Profile(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Context(), uid)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(profile)
}

func (h *AuthController) UpdateProfile(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	var in services.ProfileInput
	if !c.BindJSON(&in) {
		return
	}
	profile, err := h.service.UpdateProfile(c.Context(), uid, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(profile)
}
