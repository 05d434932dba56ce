// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/page"
	"github.com/hitoshi/gameplan/internal/planner"
)

// EventHandler はイベント閲覧のHTTPハンドラー。
type EventHandler struct {
	session *planner.Session
	props   model.FilterProperties
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(session *planner.Session, props model.FilterProperties) *EventHandler {
	return &EventHandler{
		session: session,
		props:   props,
	}
}

// eventResponse はイベントのAPIレスポンス。
// キャンセル済みイベントは時刻フィールドを持たない。
type eventResponse struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Speakers         string     `json:"speakers,omitempty"`
	Location         string     `json:"location,omitempty"`
	Takeaway         string     `json:"takeaway,omitempty"`
	IntendedAudience string     `json:"intended_audience,omitempty"`
	Tracks           []string   `json:"tracks"`
	Format           string     `json:"format,omitempty"`
	Passes           string     `json:"passes,omitempty"`
	Day              string     `json:"day,omitempty"`
	Source           string     `json:"source"`
	Recorded         bool       `json:"recorded"`
	Cancelled        bool       `json:"cancelled"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	DurationMinutes  int        `json:"duration_minutes"`
	Planned          bool       `json:"planned"`
	HasConflict      bool       `json:"has_conflict"`
}

// batchResponse はバッチ取得のAPIレスポンス。
type batchResponse struct {
	Events  []eventResponse `json:"events"`
	Emitted int             `json:"emitted"`
	Total   int             `json:"total"`
}

// eventDetailResponse はイベント詳細のAPIレスポンス。
// 現在の計画と重複する計画済みIDの一覧を含む。
type eventDetailResponse struct {
	eventResponse
	Conflicts []int `json:"conflicts"`
}

// toEventResponse はドメインのEventをAPIレスポンスへ変換する。
func (h *EventHandler) toEventResponse(ev model.Event) eventResponse {
	resp := eventResponse{
		ID:               ev.ID,
		Title:            ev.Title,
		Description:      ev.Description,
		Speakers:         ev.Speakers,
		Location:         ev.Location,
		Takeaway:         ev.Takeaway,
		IntendedAudience: ev.IntendedAudience,
		Tracks:           ev.TrackList(),
		Format:           ev.Format,
		Passes:           ev.Passes,
		Day:              ev.Day,
		Source:           string(ev.Source),
		Recorded:         ev.Recorded,
		Cancelled:        ev.Cancelled(),
		DurationMinutes:  int(ev.Duration() / time.Minute),
		Planned:          h.session.InPlan(ev.ID),
	}
	if resp.Tracks == nil {
		resp.Tracks = []string{}
	}
	if !ev.Cancelled() {
		start, end := ev.StartTime, ev.EndTime
		resp.StartTime = &start
		resp.EndTime = &end
	}
	if hasConflict, err := h.session.HasConflict(ev.ID); err == nil {
		resp.HasConflict = hasConflict
	}
	return resp
}

// ListBatch は検索結果の次のバッチを返す。
// GET /api/events?batch=next|reset
// batch=resetはページネーションを先頭へ巻き戻してから最初のバッチを返す。
func (h *EventHandler) ListBatch(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("batch") {
	case "", "next":
		// そのまま次のバッチ
	case "reset":
		h.session.ResetBatch()
	default:
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("batchはnextまたはresetを指定してください"))
		return
	}

	events := h.session.NextBatch(page.BatchSize)
	resp := batchResponse{
		Events:  make([]eventResponse, len(events)),
		Total:   h.session.ResultCount(),
		Emitted: len(events),
	}
	for i, ev := range events {
		resp.Events[i] = h.toEventResponse(ev)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetEvent はイベント詳細と計画との重複一覧を返す。
// GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("イベントIDは整数で指定してください"))
		return
	}

	ev, err := h.session.Lookup(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	conflicts, err := h.session.Conflicts(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if conflicts == nil {
		conflicts = []int{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(eventDetailResponse{
		eventResponse: h.toEventResponse(ev),
		Conflicts:     conflicts,
	})
}

// GetFilterProperties はフィルタUIの選択肢列挙を返す。
// GET /api/filter-properties
func (h *EventHandler) GetFilterProperties(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.props)
}
