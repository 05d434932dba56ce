// Package page は検索結果列の遅延バッチ取得を提供する。
package page

import (
	"sync"

	"github.com/hitoshi/gameplan/internal/model"
)

// BatchSize は全取得箇所で共有する固定のバッチ件数。
const BatchSize = 10

// Paginator は順序付き結果列をカーソル位置から固定サイズで切り出す。
// いつ呼ばれるかには関与せず、どこまで出したかだけを覚えている。
type Paginator struct {
	mu      sync.Mutex
	results []model.Event
	cursor  int
}

// NewPaginator は空の結果列を持つPaginatorを生成する。
func NewPaginator() *Paginator {
	return &Paginator{}
}

// Reset は結果列を置き換え、カーソルを先頭へ巻き戻す。
// それまでに切り出したバッチは無効になる。
func (p *Paginator) Reset(results []model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = results
	p.cursor = 0
}

// NextBatch はカーソル位置から最大batchSize件を返し、返した件数だけ
// カーソルを進める。残りが尽きていれば空の列を返す。
func (p *Paginator) NextBatch(batchSize int) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if batchSize <= 0 {
		batchSize = BatchSize
	}
	remaining := len(p.results) - p.cursor
	if remaining <= 0 {
		return []model.Event{}
	}
	if batchSize > remaining {
		batchSize = remaining
	}

	batch := make([]model.Event, batchSize)
	copy(batch, p.results[p.cursor:p.cursor+batchSize])
	p.cursor += batchSize
	return batch
}

// Emitted はこれまでに切り出した件数を返す。
func (p *Paginator) Emitted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Total は現在の結果列の全件数を返す。
func (p *Paginator) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.results)
}
