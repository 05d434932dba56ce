// Package plan はユーザーが選択したイベントIDの順序付き集合を管理する。
// すべての変更は永続化への同期書き込みを経てからリスナーに通知される。
// リスナーが呼ばれた時点で永続化は完了しているとみなしてよい。
package plan

import (
	"log/slog"
	"sync"
)

// Persistence は計画リストの読み書き先を抽象化する。
type Persistence interface {
	// LoadPlan は保存済みの計画を返す。保存がなければ空の列を返す。
	LoadPlan() ([]int, error)
	// SavePlan は計画全体を直列化して書き込む。
	SavePlan(ids []int) error
}

// Listener は計画の変更後に呼ばれる。ペイロードは渡されない。
// リスナーは現在の状態を自分で読み直す。
type Listener func()

// Store は計画済みイベントIDの順序付きリスト。重複IDは許可しない。
// 変更のたびに永続化へ書き戻し、そのあとでリスナーに通知する。
type Store struct {
	mu          sync.Mutex
	ids         []int
	persistence Persistence
	listeners   []Listener
}

// NewStore は永続化から前回の計画を読み込んでストアを生成する。
// 読み取り失敗は「前回状態なし」として空の計画で開始する。
func NewStore(p Persistence) *Store {
	s := &Store{persistence: p}
	ids, err := p.LoadPlan()
	if err != nil {
		slog.Warn("計画の読み込みに失敗、空の計画で開始します", "error", err)
		return s
	}
	s.ids = dedupe(ids)
	return s
}

// OnChange は変更通知リスナーを登録する。登録はサーバー起動時の
// 配線でのみ行う想定で、変更操作と並行には呼ばない。
func (s *Store) OnChange(listener Listener) {
	s.listeners = append(s.listeners, listener)
}

// Add はIDを計画の末尾に追加する。すでに計画済みのIDはfalseを返し、
// 状態は変化しない。
func (s *Store) Add(id int) bool {
	s.mu.Lock()
	if s.containsLocked(id) {
		s.mu.Unlock()
		return false
	}
	s.ids = append(s.ids, id)
	s.persist()
	s.mu.Unlock()

	s.notify()
	return true
}

// Remove はIDを計画から取り除く。計画にないIDは何もしない。
func (s *Store) Remove(id int) {
	s.mu.Lock()
	index := -1
	for i, planned := range s.ids {
		if planned == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return
	}
	s.ids = append(s.ids[:index], s.ids[index+1:]...)
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Replace は計画全体を置き換える。インポートによる上書きで使う。
// 重複IDは先勝ちで除去される。
func (s *Store) Replace(ids []int) {
	s.mu.Lock()
	s.ids = dedupe(ids)
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Contains はIDが計画済みかどうかを返す。
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(id)
}

// List は計画済みIDの順序付きコピーを返す。
func (s *Store) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len は計画済みイベント数を返す。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) containsLocked(id int) bool {
	for _, planned := range s.ids {
		if planned == id {
			return true
		}
	}
	return false
}

// persist は現在のリストを書き戻す。呼び出し側がロックを保持していること。
// 書き込み失敗でもメモリ上の状態は維持し、計画操作自体は失敗させない。
func (s *Store) persist() {
	snapshot := make([]int, len(s.ids))
	copy(snapshot, s.ids)
	if err := s.persistence.SavePlan(snapshot); err != nil {
		slog.Error("計画の書き込みに失敗しました", "error", err)
	}
}

// notify はロックを解放してからリスナーを呼ぶ。リスナーがストアを
// 読み直してもデッドロックしない。
func (s *Store) notify() {
	for _, listener := range s.listeners {
		listener()
	}
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	var out []int
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
