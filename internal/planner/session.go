// Package planner は検索・フィルタ・計画を束ねるセッション層を提供する。
// 適用済みフィルタ・ドラフト・クエリ・検索結果はすべてここが保持し、
// ハンドラーは状態を持たない。
package planner

import (
	"sync"
	"time"

	"github.com/hitoshi/gameplan/internal/conflict"
	"github.com/hitoshi/gameplan/internal/metrics"
	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/page"
	"github.com/hitoshi/gameplan/internal/plan"
	"github.com/hitoshi/gameplan/internal/search"
	"github.com/hitoshi/gameplan/internal/timeslot"
)

// EventRepository は検索と個別参照の両方に使うイベント集合。
type EventRepository interface {
	All() []model.Event
	Lookup(id int) (model.Event, bool)
}

// Session は1ユーザー分の閲覧状態。適用済みフィルタと自由文クエリから
// 検索結果を再計算し、ページネーターに流し込む。
// フィルタの編集はドラフトとして保持され、明示的な確定操作でのみ
// 適用済みフィルタに反映される。
// 状態遷移はすべてmuで直列化される。計画ストアの変更リスナーは
// ロック保持中に呼ばれるため、セッションへ再入してはならない。
type Session struct {
	mu        sync.Mutex
	repo      EventRepository
	planStore *plan.Store
	paginator *page.Paginator
	collector metrics.MetricsCollector

	applied model.Filter
	draft   *model.Filter
	query   string
	results []model.Event
}

// NewSession はSessionの新しいインスタンスを生成する。
// 初期状態は空クエリと全件一致フィルタで、全イベントが結果列に入る。
func NewSession(repo EventRepository, planStore *plan.Store, collector metrics.MetricsCollector) *Session {
	s := &Session{
		repo:      repo,
		planStore: planStore,
		paginator: page.NewPaginator(),
		collector: collector,
		applied:   model.DefaultFilter(),
	}
	s.mu.Lock()
	s.refreshLocked()
	s.mu.Unlock()
	return s
}

// AppliedFilter は現在適用されているフィルタを返す。
func (s *Session) AppliedFilter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Query は現在の自由文クエリを返す。
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetQuery は自由文クエリを差し替えて検索結果を再計算する。
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.refreshLocked()
}

// SetDraft はフィルタのドラフトを保存する。検索結果には影響しない。
func (s *Session) SetDraft(f model.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &f
}

// HasDraft は未適用のドラフトがあるかどうかを返す。
func (s *Session) HasDraft() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft != nil
}

// ApplyDraft はドラフトを適用済みフィルタへ昇格させ、検索結果を
// 再計算する。ドラフトがなければエラー。
func (s *Session) ApplyDraft() (model.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return model.Filter{}, model.NewNoDraftFilterError()
	}
	s.applied = *s.draft
	s.draft = nil
	s.refreshLocked()
	return s.applied, nil
}

// DiscardDraft はドラフトを破棄する。適用済みフィルタは変わらない。
func (s *Session) DiscardDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// AdvanceSlot は適用済みフィルタの時間窓を指定量だけ送り、検索結果を
// 再計算する。タイムスロットモードでなければエラー。
func (s *Session) AdvanceSlot(delta time.Duration) (model.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.applied.InTimeSlotMode {
		return model.Filter{}, model.NewNotInTimeSlotModeError()
	}
	s.applied = timeslot.Advance(s.applied, delta)
	s.refreshLocked()
	return s.applied, nil
}

// NextBatch は検索結果の次のバッチを返す。
func (s *Session) NextBatch(batchSize int) []model.Event {
	batch := s.paginator.NextBatch(batchSize)
	s.collector.RecordBatchServed(len(batch))
	return batch
}

// ResetBatch は検索結果を変えずにページネーションを先頭へ巻き戻す。
func (s *Session) ResetBatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paginator.Reset(s.results)
}

// ResultCount は現在の検索結果の全件数を返す。
func (s *Session) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Lookup はIDからイベントを引く。見つからなければエラー。
func (s *Session) Lookup(id int) (model.Event, error) {
	ev, ok := s.repo.Lookup(id)
	if !ok {
		return model.Event{}, model.NewEventNotFoundError(id)
	}
	return ev, nil
}

// AddToPlan はイベントを計画に追加する。未知のIDと二重追加はエラー。
func (s *Session) AddToPlan(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.repo.Lookup(id); !ok {
		return model.NewEventNotFoundError(id)
	}
	if !s.planStore.Add(id) {
		return model.NewDuplicatePlanError(id)
	}
	s.collector.RecordPlanMutation("add")
	return nil
}

// RemoveFromPlan はイベントを計画から外す。計画にないIDは何もしない。
func (s *Session) RemoveFromPlan(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.planStore.Contains(id) {
		return
	}
	s.planStore.Remove(id)
	s.collector.RecordPlanMutation("remove")
}

// PlannedIDs は計画済みIDの順序付きコピーを返す。
func (s *Session) PlannedIDs() []int {
	return s.planStore.List()
}

// InPlan はイベントが計画済みかどうかを返す。
func (s *Session) InPlan(id int) bool {
	return s.planStore.Contains(id)
}

// ExportPlan は現在の計画を書き出し形式で返す。
func (s *Session) ExportPlan() plan.ExportDocument {
	return plan.Export(s.planStore)
}

// ImportPlan はインポートされたID列で計画全体を上書きする。
// 現在の計画が空でない場合はconfirmが立っていない限り拒否する。
// インポートされたIDの解決可否は検証しない。エクスポート元と同じ
// データセットで使われる前提のため、未知のIDは参照時に無視される。
func (s *Session) ImportPlan(ids []int, confirm bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.planStore.Len() > 0 && !confirm {
		return model.NewImportNeedsConfirmError()
	}
	s.planStore.Replace(ids)
	s.collector.RecordPlanMutation("import")
	return nil
}

// Conflicts はイベントと時間帯が重なる計画済みIDを入力順で返す。
func (s *Session) Conflicts(id int) ([]int, error) {
	ev, ok := s.repo.Lookup(id)
	if !ok {
		return nil, model.NewEventNotFoundError(id)
	}
	return conflict.AllConflicts(ev, s.planStore.List(), s.repo), nil
}

// HasConflict はイベントが計画済みイベントのいずれかと重なるかを返す。
func (s *Session) HasConflict(id int) (bool, error) {
	ev, ok := s.repo.Lookup(id)
	if !ok {
		return false, model.NewEventNotFoundError(id)
	}
	return conflict.HasConflict(ev, s.planStore.List(), s.repo), nil
}

// refreshLocked は検索結果を再計算してページネーションを巻き戻す。
// 呼び出し側がロックを保持していること。
func (s *Session) refreshLocked() {
	start := time.Now()
	s.results = search.Search(s.repo, s.query, s.applied)
	s.collector.RecordSearchLatency(time.Since(start))
	s.collector.RecordSearch(len(s.results))
	s.paginator.Reset(s.results)
}
