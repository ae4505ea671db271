package controllers

import (
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index lists products. Query: category, page, limit.
func (h *ProductController) Index(c *ctx.Context) {
	category, ok := c.QueryID("category")
	if !ok {
		return
	}
	items, page, err := h.service.List(c.Context(), services.ProductListQuery{
		Category: category,
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated(items, page)
}

func (h *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	product, err := h.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

func (h *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(product)
}

func (h *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

func (h *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Product deleted")
}

type VariantController struct {
	service *services.VariantService
}

func NewVariantController(service *services.VariantService) *VariantController {
	return &VariantController{service: service}
}

// Index lists variants, optionally of one product (?product=).
func (h *VariantController) Index(c *ctx.Context) {
	product, ok := c.QueryID("product")
	if !ok {
		return
	}
	variants, err := h.service.List(c.Context(), product)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(variants)
}

func (h *VariantController) Store(c *ctx.Context) {
	var in services.VariantInput
	if !c.BindJSON(&in) {
		return
	}
	variant, err := h.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(variant)
}

func (h *VariantController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	c.Message("Variant deleted")
}
