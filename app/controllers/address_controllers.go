package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

// AddressController serves the caller's own address book.
type AddressController struct {
	service *services.AddressService
}

func NewAddressController(service *services.AddressService) *AddressController {
	return &AddressController{service: service}
}

func (h *AddressController) Index(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	list, err := h.service.List(c.Context(), uid)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}

func (h *AddressController) Store(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	var in services.AddressInput
	if !c.BindJSON(&in) {
		return
	}
	list, err := h.service.Add(c.Context(), uid, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(list)
}

func (h *AddressController) Update(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.AddressInput
	if !c.BindJSON(&in) {
		return
	}
	list, err := h.service.Update(c.Context(), uid, id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}

func (h *AddressController) SetPrimary(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	list, err := h.service.SetPrimary(c.Context(), uid, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}

func (h *AddressController) Destroy(c *ctx.Context) {
	uid, ok := c.UserID()
	if !ok {
		return
	}
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	list, err := h.service.Delete(c.Context(), uid, id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(list)
}
