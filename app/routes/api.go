// Package routes is the HTTP route table.
package routes

import (
	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/rbac"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

func RegisterAPI(r *router.Router, svc *services.Services) {
	authC := controllers.NewAuthController(svc.Auth)
	addressC := controllers.NewAddressController(svc.Addresses)
	categoryC := controllers.NewCategoryController(svc.Categories)
	tierC := controllers.NewTierController(svc.Tiers)
	brandC := controllers.NewBrandController(svc.Brands)
	productC := controllers.NewProductController(svc.Products)
	variantC := controllers.NewVariantController(svc.Variants)
	stockC := controllers.NewStockController(svc.Stocks)
	locationC := controllers.NewLocationController(svc.Locations)
	uploadC := controllers.NewUploadController(svc.Uploads)

	// Auth
	a := r.Group("/auth")
	a.Post("/login", "auth.login", ctx.Wrap(authC.Login))
	a.Post("/register", "auth.register", ctx.Wrap(authC.Register))
	a.Put("/refresh", "auth.refresh", ctx.Wrap(authC.Refresh))
	a.Post("/forgot-password", "auth.forgot-password", ctx.Wrap(authC.ForgotPassword))

	me := a.Group("", middleware.Auth)
	me.Put("/change-password", "auth.change-password", ctx.Wrap(authC.ChangePassword))
	me.Get("/profile", "auth.profile", ctx.Wrap(authC.Profile))
	me.Put("/profile", "auth.profile.update", ctx.Wrap(authC.UpdateProfile))

	addr := me.Group("/address")
	addr.Get("/", "address.index", ctx.Wrap(addressC.Index))
	addr.Post("/", "address.store", ctx.Wrap(addressC.Store))
	addr.Put("/set-primary/{id}", "address.primary", ctx.Wrap(addressC.SetPrimary))
	addr.Put("/{id}", "address.update", ctx.Wrap(addressC.Update))
	addr.Delete("/{id}", "address.destroy", ctx.Wrap(addressC.Destroy))

	user := r.Group("", middleware.Auth)
	admin := r.Group("", middleware.Auth, rbac.Admin)

	// Categories
	r.Get("/categories", "categories.index", ctx.Wrap(categoryC.Index))
	r.Get("/categories/{id}", "categories.show", ctx.Wrap(categoryC.Show))
	admin.Post("/categories", "categories.store", ctx.Wrap(categoryC.Store))
	admin.Put("/categories/{id}", "categories.update", ctx.Wrap(categoryC.Update))
	admin.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(categoryC.Destroy))

	// Locations
	admin.Get("/locations", "locations.index", ctx.Wrap(locationC.Index))
	admin.Get("/locations/{id}", "locations.show", ctx.Wrap(locationC.Show))
	admin.Post("/locations", "locations.store", ctx.Wrap(locationC.Store))
	admin.Put("/locations/{id}", "locations.update", ctx.Wrap(locationC.Update))
	admin.Delete("/locations/{id}", "locations.destroy", ctx.Wrap(locationC.Destroy))

	// Brands
	r.Get("/brands", "brands.index", ctx.Wrap(brandC.Index))
	admin.Post("/brands", "brands.store", ctx.Wrap(brandC.Store))

	// Products
	r.Get("/products", "products.index", ctx.Wrap(productC.Index))
	r.Get("/products/{id}", "products.show", ctx.Wrap(productC.Show))
	admin.Post("/products", "products.store", ctx.Wrap(productC.Store))
	admin.Put("/products/{id}", "products.update", ctx.Wrap(productC.Update))
	admin.Delete("/products/{id}", "products.destroy", ctx.Wrap(productC.Destroy))

	// Tiers
	r.Get("/tiers", "tiers.index", ctx.Wrap(tierC.Index))
	r.Get("/tiers/options/{id}", "tiers.options.show", ctx.Wrap(tierC.ShowOption))
	r.Get("/tiers/{id}", "tiers.show", ctx.Wrap(tierC.Show))
	admin.Post("/tiers", "tiers.store", ctx.Wrap(tierC.Store))

	// Variants
	r.Get("/variants", "variants.index", ctx.Wrap(variantC.Index))
	user.Post("/variants", "variants.store", ctx.Wrap(variantC.Store))
	user.Delete("/variants/{id}", "variants.destroy", ctx.Wrap(variantC.Destroy))

	// Stocks
	r.Get("/stocks", "stocks.index", ctx.Wrap(stockC.Index))
	user.Post("/stocks", "stocks.store", ctx.Wrap(stockC.Store))

	// Uploads
	user.Post("/uploads/image", "uploads.image", ctx.Wrap(uploadC.Image))
	user.Post("/uploads/image/{productId}", "uploads.product-image", ctx.Wrap(uploadC.ProductImage))
}
