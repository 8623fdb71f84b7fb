package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gyansetu/internal/service"
)

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.FeedService.Feed(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) Gurus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gurus, err := h.FeedService.Gurus(r.Context(), service.ParseGuruSort(query.Get("sort")), query.Get("q"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, gurus, http.StatusOK)
}

func (h *Handlers) GuruPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.FeedService.GuruPosts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, posts, http.StatusOK)
}
