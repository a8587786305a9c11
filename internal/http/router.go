package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Orders   *OrderHandler
	Carts    *CartHandler
	Catalog  *CatalogHandler
	Blogs    *BlogHandler
	Sessions *SessionHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api/order", func(r chi.Router) {
		r.Post("/cash", h.Orders.CreateCashOrder)
		r.Get("/", h.Orders.ListOrders)
		r.Get("/{orderId}", h.Orders.GetOrder)
		r.Put("/status", h.Orders.UpdateStatus)
		r.Put("/payment", h.Orders.UpdatePayment)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/{customerId}", h.Carts.GetCart)
		r.Post("/{customerId}/items", h.Carts.AddItem)
		r.Delete("/{customerId}/items/{itemId}", h.Carts.RemoveItem)
	})

	r.Route("/api/product", func(r chi.Router) {
		r.Post("/", h.Catalog.CreateProduct)
		r.Get("/", h.Catalog.ListProducts)
		r.Get("/new", h.Catalog.ListNew)
		r.Get("/topsell", h.Catalog.ListTopSell)
		r.Get("/category/{categoryId}", h.Catalog.ListByCategory)
		r.Get("/search/{key}", h.Catalog.Search)
		r.Get("/filter/{categoryId}/{minPrice}/{maxPrice}", h.Catalog.Filter)
		r.Get("/{productId}", h.Catalog.GetProduct)
		r.Put("/{productId}", h.Catalog.UpdateProduct)
		r.Delete("/{productId}", h.Catalog.DeleteProduct)
	})

	r.Route("/api/category", func(r chi.Router) {
		r.Post("/", h.Catalog.CreateCategory)
		r.Get("/", h.Catalog.ListCategories)
		r.Delete("/{categoryId}", h.Catalog.DeleteCategory)
	})

	r.Route("/api/blog", func(r chi.Router) {
		r.Post("/", h.Blogs.Create)
		r.Get("/", h.Blogs.List)
		r.Get("/{postId}", h.Blogs.Get)
		r.Put("/{postId}", h.Blogs.Update)
		r.Delete("/{postId}", h.Blogs.Delete)
	})

	r.Route("/api/session", func(r chi.Router) {
		r.Put("/customer/{customerId}", h.Sessions.BindCustomer)
		r.Put("/admin/{adminId}", h.Sessions.BindAdmin)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "shop-admin-backend",
	})
}
