package handler

import (
	"net/http"

	"github.com/streakpost/streakpost/internal/ctxkeys"
	"github.com/streakpost/streakpost/internal/service"
)

// UploadHandler issues presigned image-upload URLs. It is only routed when
// an object store is configured.
type UploadHandler struct {
	uploads *service.UploadService
}

func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type presignRequest struct {
	ProjectID   string `json:"projectId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upload, err := h.uploads.Presign(ctxkeys.UserID(r.Context()), req.ProjectID, req.Filename, req.ContentType, req.Size)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, upload)
}
