package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/stagelink/booking-notifications/internal/chatfilter"
	"github.com/stagelink/booking-notifications/internal/reminder"
	"github.com/stagelink/booking-notifications/internal/repo"
	"github.com/stagelink/booking-notifications/internal/scheduler"
)

// PassRunner is the slice of the reminder service the API needs.
type PassRunner interface {
	Run(ctx context.Context, now time.Time) (reminder.Report, error)
}

type Handler struct {
	sched  *scheduler.Scheduler
	passes PassRunner
	ledger repo.ReminderLedger
}

func NewHandler(s *scheduler.Scheduler, passes PassRunner, ledger repo.ReminderLedger) *Handler {
	return &Handler{sched: s, passes: passes, ledger: ledger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sched.Status())
}

func (h *Handler) SchedulerStart(w http.ResponseWriter, r *http.Request) {
	h.sched.Start()
	writeJSON(w, http.StatusOK, h.sched.Status())
}

func (h *Handler) SchedulerStop(w http.ResponseWriter, r *http.Request) {
	h.sched.Stop()
	writeJSON(w, http.StatusOK, h.sched.Status())
}

// RunReminderPass triggers one pass outside the scheduler cadence, for cron
// style external invokers and for operators.
func (h *Handler) RunReminderPass(w http.ResponseWriter, r *http.Request) {
	rep, err := h.passes.Run(r.Context(), time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type filterRequest struct {
	Content string `json:"content"`
	Tier    string `json:"tier"`
}

// FilterMessage classifies an outbound chat message before the caller
// persists it. The sender's tier comes resolved from subscription state;
// anything other than "privileged" is treated as standard.
func (h *Handler) FilterMessage(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	tier := chatfilter.TierStandard
	if req.Tier == string(chatfilter.TierPrivileged) {
		tier = chatfilter.TierPrivileged
	}

	writeJSON(w, http.StatusOK, chatfilter.Filter(req.Content, tier))
}

func (h *Handler) ListReminderHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	offset := parseInt(r.URL.Query().Get("offset"), 0)

	items, err := h.ledger.ListRecent(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
