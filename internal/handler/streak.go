package handler

import (
	"net/http"
	"time"

	"github.com/streakpost/streakpost/internal/ctxkeys"
	"github.com/streakpost/streakpost/internal/service"
)

type StreakHandler struct {
	streaks  *service.StreakService
	calendar *service.CalendarService
}

func NewStreakHandler(streaks *service.StreakService, calendar *service.CalendarService) *StreakHandler {
	return &StreakHandler{
		streaks:  streaks,
		calendar: calendar,
	}
}

func (h *StreakHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.streaks.CheckStatus(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, status)
}

func (h *StreakHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.streaks.Progress(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, progress)
}

func (h *StreakHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.streaks.Stats(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, stats)
}

func (h *StreakHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	cal, err := h.calendar.ForProject(ctxkeys.UserID(r.Context()), r.PathValue("id"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, cal)
}

func (h *StreakHandler) Verify(w http.ResponseWriter, r *http.Request) {
	err := h.streaks.Verify(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"message": "stats consistent with progress log"})
}

func (h *StreakHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	stats, err := h.streaks.Reconcile(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, stats)
}
