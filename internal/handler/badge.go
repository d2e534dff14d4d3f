package handler

import (
	"net/http"

	"github.com/streakpost/streakpost/internal/ctxkeys"
	"github.com/streakpost/streakpost/internal/service"
)

type BadgeHandler struct {
	badges *service.BadgeService
}

func NewBadgeHandler(badges *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

func (h *BadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badges.Badges()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, badges)
}

// Eligible lists badges the project's current streak has earned but that
// have not been awarded yet.
func (h *BadgeHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	eligible, err := h.badges.EligibleForProject(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, eligible)
}

func (h *BadgeHandler) Earned(w http.ResponseWriter, r *http.Request) {
	earned, err := h.badges.Earned(ctxkeys.UserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, earned)
}

func (h *BadgeHandler) Award(w http.ResponseWriter, r *http.Request) {
	awarded, err := h.badges.Award(ctxkeys.UserID(r.Context()), r.PathValue("id"), r.PathValue("badgeId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, awarded)
}
