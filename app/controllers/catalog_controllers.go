package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type TierController struct {
	service *services.TierService
}

func NewTierController(service *services.TierService) *TierController {
	return &TierController{service: service}
}

func (h *TierController) Index(c *ctx.Context) {
	tiers, err := h.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(tiers)
}

func (h *TierController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	tier, err := h.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(tier)
}

func (h *TierController) ShowOption(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	opt, err := h.service.GetOption(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(opt)
}

func (h *TierController) Store(c *ctx.Context) {
	var in services.TierInput
	if !c.BindJSON(&in) {
		return
	}
	tier, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(tier)
}

type BrandController struct {
	service *services.BrandService
}

func NewBrandController(service *services.BrandService) *BrandController {
	return &BrandController{service: service}
}

func (h *BrandController) Index(c *ctx.Context) {
	brands, err := h.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(brands)
}

func (h *BrandController) Store(c *ctx.Context) {
	var in services.BrandInput
	if !c.BindJSON(&in) {
		return
	}
	brand, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(brand)
}
