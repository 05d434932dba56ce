// Package search はイベント集合に対するフィルタ・全文検索エンジンを提供する。
// 検索はリポジトリ・クエリ・フィルタのみに依存する純粋な計算であり、
// 同一入力に対して常に同一の結果列を返す。
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hitoshi/gameplan/internal/model"
)

// EventSource は検索対象のイベント列を提供する。
type EventSource interface {
	All() []model.Event
}

// idPrefix はクエリトークンをID指定として扱うための接頭辞。
const idPrefix = "id:"

// Search はクエリ文字列と構造化フィルタをイベント集合へ適用し、
// 所要時間昇順の結果列を返す。並び替えは安定ソートであり、
// 同一所要時間のイベントはリポジトリの元順序を保つ。
//
// テキスト・パス種別・トラック・形式・時間帯の各述語はAND結合され、
// 各述語内の選択肢はOR結合される。未指定の次元は全件一致に退化する。
func Search(source EventSource, query string, f model.Filter) []model.Event {
	terms, ids := parseQuery(query)

	var results []model.Event
	for _, ev := range source.All() {
		if !matchText(ev, terms, ids) {
			continue
		}
		if !matchPassTypes(ev, f.PassTypes) {
			continue
		}
		if !matchTracks(ev, f.Tracks) {
			continue
		}
		if !matchFormat(ev, f.Formats) {
			continue
		}
		if !matchTimeWindow(ev, f) {
			continue
		}
		results = append(results, ev)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Duration() < results[j].Duration()
	})
	return results
}

// parseQuery はクエリを小文字化して空白で分割し、一般語と
// ID指定集合に振り分ける。整数として解釈できないID指定は捨てる。
func parseQuery(query string) ([]string, map[int]struct{}) {
	var terms []string
	ids := make(map[int]struct{})
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if strings.HasPrefix(token, idPrefix) {
			id, err := strconv.Atoi(strings.TrimPrefix(token, idPrefix))
			if err == nil {
				ids[id] = struct{}{}
			}
			continue
		}
		terms = append(terms, token)
	}
	return terms, ids
}

// matchText はテキスト述語を評価する。ID指定が1つでもあれば
// ID集合への所属のみで判定し、一般語は無視される。
// ID指定がなければ、いずれかの語がタイトルまたは登壇者名の
// 部分文字列であれば一致。語が1つもなければ全件一致。
func matchText(ev model.Event, terms []string, ids map[int]struct{}) bool {
	if len(ids) > 0 {
		_, ok := ids[ev.ID]
		return ok
	}
	if len(terms) == 0 {
		return true
	}
	title := strings.ToLower(ev.Title)
	speakers := strings.ToLower(ev.Speakers)
	for _, term := range terms {
		if strings.Contains(title, term) || strings.Contains(speakers, term) {
			return true
		}
	}
	return false
}

// matchPassTypes は選択されたパス種別のいずれかがイベントの
// パス欄の部分文字列であれば一致とする。
func matchPassTypes(ev model.Event, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, pass := range selected {
		if strings.Contains(ev.Passes, pass) {
			return true
		}
	}
	return false
}

// matchTracks はカンマ区切りのトラック欄をトークン分割したうえで
// 完全一致で判定する。"Design"の選択が"Game Design"に誤一致しないため、
// パス種別と異なり部分文字列比較は使わない。
func matchTracks(ev model.Event, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	tokens := ev.TrackList()
	for _, track := range selected {
		for _, token := range tokens {
			if token == track {
				return true
			}
		}
	}
	return false
}

func matchFormat(ev model.Event, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, format := range selected {
		if ev.Format == format {
			return true
		}
	}
	return false
}

// matchTimeWindow は半開区間の重なり判定を行う。時間帯が未設定の
// フィルタは全件一致。キャンセル済みイベントはゼロ時刻のため
// 時間帯指定があると一致しない。
func matchTimeWindow(ev model.Event, f model.Filter) bool {
	if !f.HasTimeWindow() {
		return true
	}
	return ev.StartTime.Before(f.EndDateTime) && ev.EndTime.After(f.StartDateTime)
}
