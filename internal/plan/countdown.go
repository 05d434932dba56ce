package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/gameplan/internal/model"
)

// EventLookup はIDから正規化済みイベントを引く。
type EventLookup interface {
	Lookup(id int) (model.Event, bool)
}

// Countdown は計画済みイベントのうち次に始まるものまでの残り時間を追跡する。
type Countdown struct {
	store    *Store
	repo     EventLookup
	interval time.Duration
	now      func() time.Time
}

// NewCountdown はCountdownの新しいインスタンスを生成する。
func NewCountdown(store *Store, repo EventLookup, interval time.Duration) *Countdown {
	return &Countdown{
		store:    store,
		repo:     repo,
		interval: interval,
		now:      time.Now,
	}
}

// Next は現在時刻より後に始まる計画済みイベントのうち最も早いものと、
// 開始までの残り時間を返す。該当がなければfalseを返す。
// キャンセル済みイベントと解決できないIDは対象外。
func (c *Countdown) Next() (model.Event, time.Duration, bool) {
	now := c.now()
	var next model.Event
	found := false
	for _, id := range c.store.List() {
		ev, ok := c.repo.Lookup(id)
		if !ok || ev.Cancelled() {
			continue
		}
		if !ev.StartTime.After(now) {
			continue
		}
		if !found || ev.StartTime.Before(next.StartTime) {
			next = ev
			found = true
		}
	}
	if !found {
		return model.Event{}, 0, false
	}
	return next, next.StartTime.Sub(now), true
}

// Run は一定間隔で次のイベントまでの残り時間をログに出す。
// 追跡対象がなくなった時点で自身を止める。コンテキストの取り消しでも止まる。
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ev, remaining, ok := c.Next()
			if !ok {
				slog.Info("countdown stopped: no upcoming planned event")
				return
			}
			slog.Debug("next planned event",
				slog.Int("event_id", ev.ID),
				slog.String("title", ev.Title),
				slog.String("remaining", remaining.String()),
			)
		}
	}
}
