package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zr-chat/relay/internal/service/storage"
	"github.com/zr-chat/relay/pkg/utils"
)

// Handler accepts multipart file uploads.
type Handler struct {
	store   *storage.Store
	maxSize int64
}

// New creates the upload handler.
func New(store *storage.Store, maxSize int64) *Handler {
	return &Handler{store: store, maxSize: maxSize}
}

// RegisterRoutes registers the upload route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	up, err := h.store.Save(header.Filename, file)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	utils.RespondJSON(w, http.StatusOK, up)
}
