package handler

import (
	"net/http"
	"time"

	"github.com/streakpost/streakpost/internal/ctxkeys"
	"github.com/streakpost/streakpost/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	streaks  *service.StreakService
}

func NewProjectHandler(projects *service.ProjectService, streaks *service.StreakService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		streaks:  streaks,
	}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	TargetDays  int    `json:"targetDays"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Create(ctxkeys.UserID(r.Context()), req.Name, req.Description, req.CategoryID, req.TargetDays)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.projects.Projects(ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, views)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.projects.View(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, view)
}

type updateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Update(ctxkeys.UserID(r.Context()), r.PathValue("id"), req.Name, req.Description, req.CategoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.projects.Delete(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (h *ProjectHandler) Start(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Start(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, project)
}

type extendProjectRequest struct {
	AdditionalDays int `json:"additionalDays"`
}

func (h *ProjectHandler) Extend(w http.ResponseWriter, r *http.Request) {
	var req extendProjectRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Extend(ctxkeys.UserID(r.Context()), r.PathValue("id"), req.AdditionalDays)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, project)
}

func (h *ProjectHandler) ResetStreak(w http.ResponseWriter, r *http.Request) {
	project, err := h.streaks.Reset(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, project)
}
