package handler

import (
	"io"
	"net/http"

	"staynest/internal/api/middleware"
	"staynest/internal/app/service"
	"staynest/internal/common"

	"github.com/go-chi/chi/v5"
)

const uploadFormMemory = 32 << 20 // multipart parse buffer

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(us *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	// Uploads consume storage, so anonymous callers are rejected outright.
	r.With(middleware.Authenticator).Post("/upload", h.upload)
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	headers := r.MultipartForm.File["photos"]
	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Unreadable file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Unreadable file "+fh.Filename)
			return
		}
		files = append(files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	urls, err := h.uploadService.UploadMany(r.Context(), files)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, urls)
}
