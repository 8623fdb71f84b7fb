package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"gyansetu/internal/service"
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart caps the body at the configured upload size.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("File too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Could not read the uploaded form", http.StatusBadRequest)
		}
		return false
	}
	return true
}

// formFile returns the upload in field, or nil when the field is absent.
// The caller closes the returned file.
func formFile(w http.ResponseWriter, r *http.Request, field string, allowed map[string]bool) (*service.MediaUpload, multipart.File, bool) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, true
	}
	if err != nil {
		WriteError(w, "Could not read the uploaded file", http.StatusBadRequest)
		return nil, nil, false
	}

	if ct := header.Header.Get("Content-Type"); !allowed[ct] {
		file.Close()
		WriteError(w, fmt.Sprintf("Unsupported file type %q", ct), http.StatusBadRequest)
		return nil, nil, false
	}

	return &service.MediaUpload{FileName: header.Filename, Reader: file, Size: header.Size}, file, true
}
