// Package conflict は計画済みイベント間の時間帯重複を判定する。
// 計画集合は検索やフィルタとは独立に変化するため、判定結果は
// キャッシュせず呼び出しのたびに計算する。
package conflict

import "github.com/hitoshi/gameplan/internal/model"

// EventLookup はIDから正規化済みイベントを引く。
type EventLookup interface {
	Lookup(id int) (model.Event, bool)
}

// HasConflict はイベントが計画済みIDのいずれかと時間帯で重複するかを返す。
// 自分自身のIDは重複とみなさない。リポジトリで解決できないIDは無視する。
func HasConflict(ev model.Event, plannedIDs []int, repo EventLookup) bool {
	for _, id := range plannedIDs {
		if id == ev.ID {
			continue
		}
		planned, ok := repo.Lookup(id)
		if !ok {
			continue
		}
		if ev.Overlaps(planned) {
			return true
		}
	}
	return false
}

// AllConflicts はイベントと重複する計画済みIDを、入力順を保って返す。
// 時刻順には並べ替えない。重複がなければ空の列を返す。
func AllConflicts(ev model.Event, plannedIDs []int, repo EventLookup) []int {
	var conflicts []int
	for _, id := range plannedIDs {
		if id == ev.ID {
			continue
		}
		planned, ok := repo.Lookup(id)
		if !ok {
			continue
		}
		if ev.Overlaps(planned) {
			conflicts = append(conflicts, id)
		}
	}
	return conflicts
}
