package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

// multipartOverhead is allowed on top of the image size for the rest of
// the multipart body.
const multipartOverhead = 1 << 20

type UploadController struct {
	service *services.UploadService
}

func NewUploadController(service *services.UploadService) *UploadController {
	return &UploadController{service: service}
}

// Image stores the multipart field "image".
func (h *UploadController) Image(c *ctx.Context) {
	file, ok := h.file(c)
	if !ok {
		return
	}
	defer file.Close()

	up, err := h.service.Image(c.Context(), file)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(up)
}

// ProductImage stores the image and makes it the product's thumbnail.
func (h *UploadController) ProductImage(c *ctx.Context) {
	id, ok := c.ParamID("productId")
	if !ok {
		return
	}
	file, ok := h.file(c)
	if !ok {
		return
	}
	defer file.Close()

	up, err := h.service.ProductImage(c.Context(), id, file)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(up)
}

func (h *UploadController) file(c *ctx.Context) (multipart.File, bool) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, h.service.MaxBytes()+multipartOverhead)
	file, _, err := c.R.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.ValidationError(map[string]string{
				"image": fmt.Sprintf("The image must not be greater than %d kilobytes.", h.service.MaxBytes()/1024),
			})
			return nil, false
		}
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return nil, false
	}
	return file, true
}
