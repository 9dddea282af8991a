package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/controllers"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/blogs"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/cart"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/categories"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/kyc"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/orders"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/products"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/returns"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/reviews"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/users"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/config"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Products   products.Service
	Categories categories.Service
	Cart       cart.Service
	Orders     orders.Service
	Reviews    reviews.Service
	KYC        kyc.Service
	Returns    returns.Service
	Blogs      blogs.Service
	Users      users.Service

	ReadyPingers []func() error
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(d.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.ReadyPingers...))
	})

	if d.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/{slug}", controllers.GetProductBySlug(d.Products, logg))
		})

		r.Get("/reviews/product/{productId}", controllers.ListProductReviews(d.Reviews, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryTree(d.Categories, logg))
			r.Get("/{slug}", controllers.GetCategoryBySlug(d.Categories, logg))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", controllers.ListBlogs(d.Blogs, logg))
			r.Get("/{slug}", controllers.GetBlogBySlug(d.Blogs, logg))
		})

		// Cart accepts both signed-in shoppers and guests carrying an
		// X-Shopper-Id header.
		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))
			r.Get("/", controllers.CartFetch(d.Cart, logg))
			r.Post("/items", controllers.CartAddItem(d.Cart, d.Products, d.Metrics, logg))
			r.Delete("/items", controllers.CartRemoveItem(d.Cart, d.Metrics, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(d.Cart, d.Metrics, logg))
			r.Delete("/", controllers.CartClear(d.Cart, d.Metrics, logg))
			r.Post("/toggle", controllers.CartToggle(d.Cart, logg))
			r.Post("/open", controllers.CartOpen(d.Cart, logg))
			r.Post("/close", controllers.CartClose(d.Cart, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/checkout", controllers.Checkout(d.Orders, logg))
				r.Get("/", controllers.ListMyOrders(d.Orders, logg))
				r.Get("/{id}", controllers.GetOrder(d.Orders, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", controllers.SubmitReview(d.Reviews, logg))
				r.Delete("/{id}", controllers.DeleteReview(d.Reviews, logg))
			})

			r.Route("/kyc", func(r chi.Router) {
				r.Post("/", controllers.SubmitKYC(d.KYC, logg))
				r.Get("/status", controllers.MyKYCStatus(d.KYC, logg))
			})

			r.Route("/returns", func(r chi.Router) {
				r.Post("/", controllers.InitiateReturn(d.Returns, logg))
				r.Get("/", controllers.ListMyReturns(d.Returns, logg))
				r.Get("/{returnId}", controllers.GetReturn(d.Returns, logg))
				r.Post("/{returnId}/cancel", controllers.CancelReturn(d.Returns, logg))
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.MyProfile(d.Users, logg))
				r.Patch("/", controllers.UpdateMyProfile(d.Users, logg))
				r.Post("/password", controllers.ChangeMyPassword(d.Users, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(d.Products, logg))
			r.Put("/{id}", controllers.AdminUpdateProduct(d.Products, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(d.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(d.Categories, logg))
			r.Delete("/{id}", controllers.AdminDeleteCategory(d.Categories, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{id}", controllers.GetOrder(d.Orders, logg))
			r.Patch("/{id}/status", controllers.AdminUpdateOrderStatus(d.Orders, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Patch("/{id}/status", controllers.AdminModerateReview(d.Reviews, logg))
			r.Delete("/{id}", controllers.DeleteReview(d.Reviews, logg))
		})

		r.Route("/kyc", func(r chi.Router) {
			r.Get("/", controllers.AdminListKYC(d.KYC, logg))
			r.Get("/stats", controllers.AdminKYCStats(d.KYC, logg))
			r.Get("/{applicationId}", controllers.AdminGetKYC(d.KYC, logg))
			r.Post("/{applicationId}/review", controllers.AdminReviewKYC(d.KYC, logg))
		})

		r.Route("/returns", func(r chi.Router) {
			r.Get("/", controllers.AdminListReturns(d.Returns, logg))
			r.Patch("/{returnId}/status", controllers.AdminAdvanceReturn(d.Returns, logg))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", controllers.AdminListBlogs(d.Blogs, logg))
			r.Post("/", controllers.AdminCreateBlog(d.Blogs, logg))
			r.Put("/{id}", controllers.AdminUpdateBlog(d.Blogs, logg))
			r.Delete("/{id}", controllers.AdminDeleteBlog(d.Blogs, logg))
		})
	})

	return r
}
