package schedule

import (
	"log/slog"
	"time"

	"github.com/hitoshi/gameplan/internal/model"
)

// timestampLayouts はデータセットのタイムスタンプとして受け付けるレイアウト。
// 上から順に試行する。
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 15:04",
	"01/02/2006 15:04:05",
}

// Repository は正規化済みイベントの順序付き列とID逆引きを保持する。
// 起動時に1回構築され、以降変更されない。
type Repository struct {
	events []model.Event
	index  map[int]int // event ID → events内の位置
}

// Build は生レコード列からリポジトリを構築する。
// タイムスタンプが不正なレコードも弾かず、キャンセル済みセンチネル
// （両タイムスタンプゼロ値）のイベントとして取り込む。
// IDはタイトルのハッシュで決定的に採番する。同一タイトルの衝突時は
// 先に現れたイベントが逆引きの対象になる。
func Build(records []RawRecord, sanitizer *Sanitizer) *Repository {
	events := make([]model.Event, 0, len(records))
	index := make(map[int]int, len(records))
	cancelled := 0

	for _, rec := range records {
		ev := normalize(rec, sanitizer)
		if ev.Cancelled() {
			cancelled++
		}
		pos := len(events)
		events = append(events, ev)
		if _, exists := index[ev.ID]; !exists {
			index[ev.ID] = pos
		}
	}

	if cancelled > 0 {
		slog.Warn("dataset contains records with unparsable timestamps",
			slog.Int("cancelled", cancelled),
			slog.Int("total", len(records)),
		)
	}

	return &Repository{events: events, index: index}
}

// normalize は生レコード1件をイベントに正規化する。
func normalize(rec RawRecord, sanitizer *Sanitizer) model.Event {
	start, startOK := parseTimestamp(rec.StartTime)
	end, endOK := parseTimestamp(rec.EndTime)
	if !startOK || !endOK {
		// 片側だけ読めても信用しない。不正レコードは両フィールド無効の
		// キャンセル済みセンチネルに写像する。
		start, end = time.Time{}, time.Time{}
	}

	title := sanitizer.PlainText(rec.SessionTitle)

	return model.Event{
		ID:               model.TitleHash(title),
		Title:            title,
		Description:      sanitizer.PlainText(rec.Description),
		Speakers:         sanitizer.PlainText(rec.Speakers),
		Location:         sanitizer.PlainText(rec.Location),
		Takeaway:         sanitizer.PlainText(rec.Takeaway),
		IntendedAudience: sanitizer.PlainText(rec.IntendedAudience),
		Tracks:           rec.Tracks,
		Format:           rec.Format,
		Passes:           rec.Passes,
		Day:              rec.Day,
		Source:           model.EventSourceDataset,
		Recorded:         rec.GDCVaultRecording == recordedMarker,
		StartTime:        start,
		EndTime:          end,
	}
}

// parseTimestamp はデータセットのタイムスタンプ文字列を解釈する。
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Lookup はIDからイベントを引く。未知のIDは(ゼロ値, false)を返す。
func (r *Repository) Lookup(id int) (model.Event, bool) {
	pos, ok := r.index[id]
	if !ok {
		return model.Event{}, false
	}
	return r.events[pos], true
}

// All は全イベントの順序付き列を返す。読み取り専用ビューとして扱うこと。
func (r *Repository) All() []model.Event {
	return r.events
}

// Len は保持するイベント数を返す。
func (r *Repository) Len() int {
	return len(r.events)
}
