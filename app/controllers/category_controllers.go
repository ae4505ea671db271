package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// Index answers 204 when there are no categories.
func (h *CategoryController) Index(c *ctx.Context) {
	list, err := h.service.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	if len(list) == 0 {
		c.NoContent()
		return
	}
	c.Success(list)
}

func (h *CategoryController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	node, err := h.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(node)
}

func (h *CategoryController) Store(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	category, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(category)
}

func (h *CategoryController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	category, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(category)
}

func (h *CategoryController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	c.NoContent()
}
