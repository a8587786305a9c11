package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haianhng/shop-admin-backend/internal/blog"
)

type BlogHandler struct {
	repo   blog.Repository
	images ImageStore
}

func NewBlogHandler(repo blog.Repository, images ImageStore) *BlogHandler {
	return &BlogHandler{repo: repo, images: images}
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required fields")
		return
	}

	image, err := h.images.SaveFromRequest(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	author := r.FormValue("author")
	if author == "" {
		author = "Anonymous"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p := &blog.Post{
		Title:       title,
		Content:     content,
		Author:      author,
		Image:       image,
		IsPublished: r.FormValue("isPublished") != "false",
	}
	if err := h.repo.Create(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create blog")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	posts, err := h.repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load blogs")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetByID(ctx, postID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load blog")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.repo.GetByID(ctx, postID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load blog")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}

	if v := r.FormValue("title"); v != "" {
		p.Title = v
	}
	if v := r.FormValue("content"); v != "" {
		p.Content = v
	}
	if v := r.FormValue("author"); v != "" {
		p.Author = v
	}
	if v := r.FormValue("isPublished"); v != "" {
		p.IsPublished = v != "false"
	}
	image, err := h.images.SaveFromRequest(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if image != "" {
		p.Image = image
	}

	if err := h.repo.Update(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update blog")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Delete(ctx, postID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete blog")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted."})
}
