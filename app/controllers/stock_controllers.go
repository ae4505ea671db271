package controllers

import (
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type StockController struct {
	service *services.StockService
}

func NewStockController(service *services.StockService) *StockController {
	return &StockController{service: service}
}

// Index lists ledger rows. Query: product, variant.
func (h *StockController) Index(c *ctx.Context) {
	product, ok := c.QueryID("product")
	if !ok {
		return
	}
	variant, ok := c.QueryID("variant")
	if !ok {
		return
	}
	rows, err := h.service.List(c.Context(), repositories.StockQuery{Product: product, Variant: variant})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(rows)
}

func (h *StockController) Store(c *ctx.Context) {
	var in services.StockInput
	if !c.BindJSON(&in) {
		return
	}
	row, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(row)
}

type LocationController struct {
	service *services.LocationService
}

func NewLocationController(service *services.LocationService) *LocationController {
	return &LocationController{service: service}
}

func (h *LocationController) Index(c *ctx.Context) {
	items, page, err := h.service.List(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated(items, page)
}

func (h *LocationController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	location, err := h.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(location)
}

func (h *LocationController) Store(c *ctx.Context) {
	var in services.LocationInput
	if !c.BindJSON(&in) {
		return
	}
	location, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(location)
}

func (h *LocationController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.LocationInput
	if !c.BindJSON(&in) {
		return
	}
	location, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(location)
}

func (h *LocationController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Location deleted")
}
