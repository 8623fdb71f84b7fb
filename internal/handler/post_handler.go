package handlers

import (
	"mime/multipart"
	"net/http"

	"gyansetu/internal/models"
	"gyansetu/internal/service"
)

type CreatePostRequest struct {
	Type    string `json:"type" validate:"required,oneof=IMAGE VIDEO ARTICLE"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"max=50000"`
}

// CreatePost accepts JSON for articles, or multipart with a "media" file.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	var media *service.MediaUpload

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		req = CreatePostRequest{
			Type:    r.FormValue("type"),
			Title:   r.FormValue("title"),
			Content: r.FormValue("content"),
		}
		if err := h.Validate.Struct(req); err != nil {
			WriteError(w, validationMessage(err), http.StatusBadRequest)
			return
		}

		allowed := imageTypes
		if models.PostType(req.Type) == models.PostVideo {
			allowed = videoTypes
		}
		var file multipart.File
		media, file, ok = formFile(w, r, "media", allowed)
		if !ok {
			return
		}
		if file != nil {
			defer file.Close()
		}
	} else if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), session.User, service.CreatePostRequest{
		Type:    models.PostType(req.Type),
		Title:   req.Title,
		Content: req.Content,
		Media:   media,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}
