package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/streakpost/streakpost/internal/ctxkeys"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/service"
)

type ProgressHandler struct {
	posting *service.PostingService
}

func NewProgressHandler(posting *service.PostingService) *ProgressHandler {
	return &ProgressHandler{posting: posting}
}

func (h *ProgressHandler) CanPost(w http.ResponseWriter, r *http.Request) {
	perm, err := h.posting.CanPost(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, perm)
}

type createPostRequest struct {
	Content string           `json:"content"`
	Image   *model.ImageMeta `json:"image,omitempty"`
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	result, err := h.posting.CreatePost(ctxkeys.UserID(ctx), r.PathValue("id"), req.Content, req.Image, ctxkeys.UserEmail(ctx), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, result)
}

type updatePostRequest struct {
	Content     string           `json:"content"`
	Image       *model.ImageMeta `json:"image,omitempty"`
	RemoveImage bool             `json:"removeImage,omitempty"`
}

func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.posting.UpdatePost(ctxkeys.UserID(r.Context()), r.PathValue("id"), service.UpdatePostInput{
		Content:     req.Content,
		Image:       req.Image,
		RemoveImage: req.RemoveImage,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, post)
}

// History serves the paginated log, or a single calendar day when a
// date=YYYY-MM-DD query parameter is present.
func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		posts, err := h.posting.PostsByDate(ctxkeys.UserID(r.Context()), r.PathValue("id"), date)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respond(w, http.StatusOK, posts)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	page, err := h.posting.History(ctxkeys.UserID(r.Context()), r.PathValue("id"), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, page)
}
