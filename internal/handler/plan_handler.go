package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/plan"
	"github.com/hitoshi/gameplan/internal/planner"
)

// importMaxSize はインポートファイルの読み込み上限バイト数。
const importMaxSize = 1 << 20

// PlanHandler は計画管理のHTTPハンドラー。
type PlanHandler struct {
	session   *planner.Session
	countdown *plan.Countdown
}

// NewPlanHandler はPlanHandlerを生成する。
func NewPlanHandler(session *planner.Session, countdown *plan.Countdown) *PlanHandler {
	return &PlanHandler{
		session:   session,
		countdown: countdown,
	}
}

// plannedEventResponse は計画一覧の1エントリ。重複フラグを含む。
type plannedEventResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Cancelled   bool   `json:"cancelled"`
	HasConflict bool   `json:"has_conflict"`
	Conflicts   []int  `json:"conflicts"`
}

// planResponse は計画一覧のAPIレスポンス。
type planResponse struct {
	PlannedEvents []plannedEventResponse `json:"planned_events"`
}

// ListPlan は計画済みイベントの一覧を重複フラグ付きで返す。
// GET /api/plan
func (h *PlanHandler) ListPlan(w http.ResponseWriter, r *http.Request) {
	ids := h.session.PlannedIDs()
	resp := planResponse{PlannedEvents: make([]plannedEventResponse, 0, len(ids))}

	for _, id := range ids {
		ev, err := h.session.Lookup(id)
		if err != nil {
			// インポート由来の未知IDは一覧から除外する
			continue
		}
		conflicts, err := h.session.Conflicts(id)
		if err != nil {
			continue
		}
		if conflicts == nil {
			conflicts = []int{}
		}
		resp.PlannedEvents = append(resp.PlannedEvents, plannedEventResponse{
			ID:          id,
			Title:       ev.Title,
			Cancelled:   ev.Cancelled(),
			HasConflict: len(conflicts) > 0,
			Conflicts:   conflicts,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// AddEvent はイベントを計画に追加する。
// POST /api/plan/{id}
func (h *PlanHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("イベントIDは整数で指定してください"))
		return
	}

	if err := h.session.AddToPlan(id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveEvent はイベントを計画から外す。計画にないIDでも成功を返す。
// DELETE /api/plan/{id}
func (h *PlanHandler) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("イベントIDは整数で指定してください"))
		return
	}

	h.session.RemoveFromPlan(id)
	w.WriteHeader(http.StatusNoContent)
}

// nextEventResponse は次の計画済みイベントのAPIレスポンス。
type nextEventResponse struct {
	EventID          int       `json:"event_id"`
	Title            string    `json:"title"`
	StartTime        time.Time `json:"start_time"`
	RemainingSeconds int       `json:"remaining_seconds"`
}

// NextEvent は次に始まる計画済みイベントまでのカウントダウンを返す。
// 該当がなければ204を返す。
// GET /api/plan/next
func (h *PlanHandler) NextEvent(w http.ResponseWriter, r *http.Request) {
	ev, remaining, ok := h.countdown.Next()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(nextEventResponse{
		EventID:          ev.ID,
		Title:            ev.Title,
		StartTime:        ev.StartTime,
		RemainingSeconds: int(remaining / time.Second),
	})
}

// ExportPlan は計画をダウンロード可能なJSONとして返す。
// GET /api/plan/export
func (h *PlanHandler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="gameplan-export.json"`)
	json.NewEncoder(w).Encode(h.session.ExportPlan())
}

// ImportPlan はエクスポート形式のJSONで計画全体を上書きする。
// 現在の計画が空でない場合は?confirm=trueが必要。
// POST /api/plan/import
func (h *PlanHandler) ImportPlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, importMaxSize))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの読み込みに失敗しました"))
		return
	}

	ids, err := plan.ParseImport(body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.session.ImportPlan(ids, confirm); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.session.ExportPlan())
}
