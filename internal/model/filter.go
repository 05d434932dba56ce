package model

import "time"

// DayNone は曜日未選択を表すSelectedDayの値。
const DayNone = -1

// Filter はイベント検索の構造化フィルタを表す値オブジェクト。
// 各集合フィールドは空のとき「その軸では絞り込まない」を意味する。
// 編集中は値コピーのドラフトとして扱い、明示的な確定操作でのみ適用される。
type Filter struct {
	SelectedDay    int // time.Weekday相当のインデックス。DayNoneで未選択
	StartDateTime  time.Time
	EndDateTime    time.Time
	PassTypes      []string
	Tracks         []string
	Formats        []string
	InTimeSlotMode bool
}

// DefaultFilter は全件にマッチする初期フィルタを返す。
func DefaultFilter() Filter {
	return Filter{SelectedDay: DayNone}
}

// HasTimeWindow は時間窓による絞り込みが有効かどうかを返す。
// 両端が設定されていない限り時間窓は全期間（絞り込みなし）として扱う。
func (f Filter) HasTimeWindow() bool {
	return !f.StartDateTime.IsZero() && !f.EndDateTime.IsZero()
}

// WindowWidth は時間窓の幅を返す。窓が無効な場合は0。
func (f Filter) WindowWidth() time.Duration {
	if !f.HasTimeWindow() {
		return 0
	}
	return f.EndDateTime.Sub(f.StartDateTime)
}

// FilterProperties はフィルタUIの選択肢を埋めるための事前計算済み列挙。
// 曜日ごとの最早開始・最遅終了はタイムスロット窓の初期位置にも使う。
type FilterProperties struct {
	PassTypes  []string                   `json:"pass_types"`
	Tracks     []string                   `json:"tracks"`
	Formats    []string                   `json:"formats"`
	StartTimes map[time.Weekday]time.Time `json:"start_times"`
	EndTimes   map[time.Weekday]time.Time `json:"end_times"`
}
