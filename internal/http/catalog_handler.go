package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/haianhng/shop-admin-backend/internal/catalog"
)

const listLimit = 8

type CatalogHandler struct {
	repo   catalog.Repository
	images ImageStore
}

func NewCatalogHandler(repo catalog.Repository, images ImageStore) *CatalogHandler {
	return &CatalogHandler{repo: repo, images: images}
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	name := r.FormValue("name")
	categoryID := r.FormValue("categoryId")
	if name == "" || categoryID == "" {
		writeError(w, http.StatusBadRequest, "name and categoryId are required")
		return
	}
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	image, err := h.images.SaveFromRequest(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p := &catalog.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: r.FormValue("description"),
		Image:       image,
		Price:       price,
	}
	if err := h.repo.CreateProduct(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if v := r.FormValue("name"); v != "" {
		p.Name = v
	}
	if v := r.FormValue("categoryId"); v != "" {
		p.CategoryID = v
	}
	if v := r.FormValue("description"); v != "" {
		p.Description = v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid price")
			return
		}
		p.Price = price
	}
	image, err := h.images.SaveFromRequest(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if image != "" {
		p.Image = image
	}

	if err := h.repo.UpdateProduct(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.DeleteProduct(ctx, productID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted."})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.ListProducts(ctx)
	})
}

func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.ListByCategory(ctx, categoryID)
	})
}

func (h *CatalogHandler) ListNew(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.ListNewest(ctx, listLimit)
	})
}

func (h *CatalogHandler) ListTopSell(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.ListTopSell(ctx, listLimit)
	})
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.Search(ctx, key)
	})
}

func (h *CatalogHandler) Filter(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	minPrice, errMin := decimal.NewFromString(chi.URLParam(r, "minPrice"))
	maxPrice, errMax := decimal.NewFromString(chi.URLParam(r, "maxPrice"))
	if errMin != nil || errMax != nil {
		writeError(w, http.StatusBadRequest, "invalid price range")
		return
	}

	h.respondList(w, r, func(ctx context.Context) ([]catalog.Product, error) {
		return h.repo.Filter(ctx, categoryID, minPrice, maxPrice)
	})
}

func (h *CatalogHandler) respondList(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]catalog.Product, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := load(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c := &catalog.Category{Name: body.Name}
	if err := h.repo.CreateCategory(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.DeleteCategory(ctx, categoryID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted."})
}
