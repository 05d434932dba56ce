package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/planner"
	"github.com/hitoshi/gameplan/internal/timeslot"
)

// FilterHandler はフィルタのドラフト編集・適用・タイムスロット送りのHTTPハンドラー。
type FilterHandler struct {
	session   *planner.Session
	props     model.FilterProperties
	slotWidth time.Duration
}

// NewFilterHandler はFilterHandlerを生成する。
// slotWidthはタイムスロットモードに入るときの初期窓の幅。
func NewFilterHandler(session *planner.Session, props model.FilterProperties, slotWidth time.Duration) *FilterHandler {
	return &FilterHandler{
		session:   session,
		props:     props,
		slotWidth: slotWidth,
	}
}

// filterPayload はフィルタのAPI表現。リクエストとレスポンスで共用する。
type filterPayload struct {
	SelectedDay    int        `json:"selected_day"`
	StartDateTime  *time.Time `json:"start_datetime,omitempty"`
	EndDateTime    *time.Time `json:"end_datetime,omitempty"`
	PassTypes      []string   `json:"pass_types"`
	Tracks         []string   `json:"tracks"`
	Formats        []string   `json:"formats"`
	InTimeSlotMode bool       `json:"in_time_slot_mode"`
}

// toFilter はAPI表現をドメインのFilterへ変換する。
func (p filterPayload) toFilter() model.Filter {
	f := model.DefaultFilter()
	f.SelectedDay = p.SelectedDay
	if p.StartDateTime != nil {
		f.StartDateTime = *p.StartDateTime
	}
	if p.EndDateTime != nil {
		f.EndDateTime = *p.EndDateTime
	}
	f.PassTypes = p.PassTypes
	f.Tracks = p.Tracks
	f.Formats = p.Formats
	f.InTimeSlotMode = p.InTimeSlotMode
	return f
}

// fromFilter はドメインのFilterをAPI表現へ変換する。
func fromFilter(f model.Filter) filterPayload {
	p := filterPayload{
		SelectedDay:    f.SelectedDay,
		PassTypes:      f.PassTypes,
		Tracks:         f.Tracks,
		Formats:        f.Formats,
		InTimeSlotMode: f.InTimeSlotMode,
	}
	if p.PassTypes == nil {
		p.PassTypes = []string{}
	}
	if p.Tracks == nil {
		p.Tracks = []string{}
	}
	if p.Formats == nil {
		p.Formats = []string{}
	}
	if f.HasTimeWindow() {
		start, end := f.StartDateTime, f.EndDateTime
		p.StartDateTime = &start
		p.EndDateTime = &end
	}
	return p
}

// appliedFilterResponse はフィルタ適用後のAPIレスポンス。
type appliedFilterResponse struct {
	Filter      filterPayload `json:"filter"`
	ResultCount int           `json:"result_count"`
}

// SaveDraft はフィルタのドラフトを保存する。検索結果は変わらない。
// タイムスロットモードで時間窓が未指定の場合は、選択曜日の最早開始時刻を
// 起点とする初期窓を補う。
// PUT /api/filter/draft
func (h *FilterHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var payload filterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	f := payload.toFilter()
	if f.InTimeSlotMode && !f.HasTimeWindow() {
		if seeded, ok := timeslot.InitialWindow(h.props, time.Weekday(f.SelectedDay), h.slotWidth); ok {
			f.StartDateTime = seeded.StartDateTime
			f.EndDateTime = seeded.EndDateTime
		}
	}

	h.session.SetDraft(f)
	w.WriteHeader(http.StatusNoContent)
}

// applyRequest はドラフト適用リクエストのボディ。クエリの同時差し替えは任意。
type applyRequest struct {
	Query *string `json:"query,omitempty"`
}

// ApplyDraft はドラフトを適用済みフィルタへ昇格し、検索を再実行する。
// POST /api/filter/apply
func (h *FilterHandler) ApplyDraft(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest,
				model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
			return
		}
	}

	if req.Query != nil {
		h.session.SetQuery(*req.Query)
	}

	applied, err := h.session.ApplyDraft()
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appliedFilterResponse{
		Filter:      fromFilter(applied),
		ResultCount: h.session.ResultCount(),
	})
}

// DiscardDraft はドラフトを破棄する。適用済みフィルタは変わらない。
// DELETE /api/filter/draft
func (h *FilterHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.session.DiscardDraft()
	w.WriteHeader(http.StatusNoContent)
}

// slotAdvanceRequest はタイムスロット送りリクエストのボディ。
type slotAdvanceRequest struct {
	DeltaMinutes int `json:"delta_minutes"`
}

// AdvanceSlot は適用済みフィルタの時間窓を指定分だけ送る。
// POST /api/filter/slot/advance
func (h *FilterHandler) AdvanceSlot(w http.ResponseWriter, r *http.Request) {
	var req slotAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}
	if req.DeltaMinutes == 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("delta_minutesは0以外を指定してください"))
		return
	}

	shifted, err := h.session.AdvanceSlot(time.Duration(req.DeltaMinutes) * time.Minute)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appliedFilterResponse{
		Filter:      fromFilter(shifted),
		ResultCount: h.session.ResultCount(),
	})
}

// searchRequest はクエリ差し替えリクエストのボディ。
type searchRequest struct {
	Query string `json:"query"`
}

// SetQuery は自由文クエリを差し替え、適用済みフィルタで検索を再実行する。
// PUT /api/search
func (h *FilterHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	h.session.SetQuery(req.Query)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appliedFilterResponse{
		Filter:      fromFilter(h.session.AppliedFilter()),
		ResultCount: h.session.ResultCount(),
	})
}
