package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/utils"
)

// Handler serves the tracker over HTTP. The tracker is single-threaded, so
// every request holds mu for its whole duration.
type Handler struct {
	mu      sync.Mutex
	tracker *tracker.Tracker
}

func NewHandler(tr *tracker.Tracker) *Handler {
	return &Handler{tracker: tr}
}

// createTaskRequest is the body of POST /api/tasks.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsRecurring bool   `json:"isRecurring"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
}

type errorResponse struct {
	Error string `json:"error"`
}

// lock serialises access and applies a pending rollover so a server running
// past midnight resets recurring tasks on the first request of the day.
func (h *Handler) lock(w http.ResponseWriter) bool {
	h.mu.Lock()
	if _, err := h.tracker.Rollover(); err != nil {
		h.mu.Unlock()
		logger.Error("Rollover failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update daily tasks")
		return false
	}
	return true
}

// GetDailyTasks handles GET /api/tasks/daily.
func (h *Handler) GetDailyTasks(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.tracker.DailyTasks())
}

// GetTasks handles GET /api/tasks, or GET /api/tasks?date=YYYY-MM-DD for the
// one-time tasks of a day.
func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()

	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusOK, h.tracker.Tasks())
		return
	}
	day, err := utils.ParseDateInLocation(date, h.tracker.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, h.tracker.TasksForDay(day))
}

// GetTask handles GET /api/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()

	task, ok := h.tracker.Task(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, tracker.ErrTaskNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()

	in := tracker.NewTask{
		Title:       req.Title,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	}
	if req.Date != "" {
		day, err := utils.ParseDateInLocation(req.Date, h.tracker.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		in.Date = &day
	}

	task, ok := h.tracker.AddTask(in)
	if !ok {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := h.tracker.SaveTasks(); err != nil {
		logger.Error("Failed to save tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// ToggleTask handles POST /api/tasks/{id}/toggle.
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()

	task, ok := h.tracker.ToggleCompletion(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, tracker.ErrTaskNotFound.Error())
		return
	}
	if err := h.tracker.Save(); err != nil {
		logger.Error("Failed to save after toggle", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// GetHistory handles GET /api/history.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.tracker.GroupedHistory())
}

// GetStats handles GET /api/stats?date=YYYY-MM-DD (default today).
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !h.lock(w) {
		return
	}
	defer h.mu.Unlock()

	day := h.tracker.Today()
	if date := r.URL.Query().Get("date"); date != "" {
		var err error
		if day, err = utils.ParseDateInLocation(date, h.tracker.Location()); err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}
	writeJSON(w, http.StatusOK, h.tracker.Stats(day))
}

// Healthz handles GET /api/healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		logger.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
