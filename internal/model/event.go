// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
	"unicode/utf16"
)

// EventSource はイベントの出自を表す。
type EventSource string

const (
	// EventSourceDataset は公式スケジュールデータセット由来のイベント。
	EventSourceDataset EventSource = "dataset"
	// EventSourceUser はユーザーが作成したイベント。
	EventSourceUser EventSource = "user"
)

// Event はスケジュール上の1セッションを表す。
// リポジトリ構築時に生成され、以降変更されない。
// StartTime/EndTimeが両方ゼロ値の場合はキャンセル済みセンチネルを意味する
// （元データのタイムスタンプが不正だったレコード）。
type Event struct {
	ID               int
	Title            string
	Description      string
	Speakers         string
	Location         string
	Takeaway         string
	IntendedAudience string
	Tracks           string // カンマ区切り。意味的にはトラック名の集合
	Format           string
	Passes           string // カンマ区切りのパス名の集合
	Day              string
	Source           EventSource
	Recorded         bool
	StartTime        time.Time
	EndTime          time.Time
}

// Cancelled はキャンセル済みセンチネル状態かどうかを返す。
// 両タイムスタンプが不正なレコードはインジェストで弾かずこの状態に吸収される。
func (e Event) Cancelled() bool {
	return e.StartTime.IsZero() && e.EndTime.IsZero()
}

// Duration はセッションの所要時間を返す。キャンセル済みの場合は0。
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// TrackList はTracksフィールドをカンマ分割・トリムしたトラック名のリストを返す。
func (e Event) TrackList() []string {
	var tracks []string
	for _, t := range strings.Split(e.Tracks, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// Overlaps は2つのイベントの時間区間が半開区間[start, end)として重なるかを返す。
// 終了時刻＝相手の開始時刻のケースは重なりとみなさない。
func (e Event) Overlaps(other Event) bool {
	return e.StartTime.Before(other.EndTime) && e.EndTime.After(other.StartTime)
}

// TitleHash はタイトル文字列から決定的な32bitハッシュを計算する。
// 同一データセットの再読み込みで同じIDが得られるよう、UTF-16コード単位ごとに
// hash = (hash << 5) - hash + unit を32bit符号付きで畳み込む。
// 既知の制限: 同一タイトルの別イベントは同じIDに潰れる。衝突検出は行わない。
func TitleHash(title string) int {
	var hash int32
	for _, unit := range utf16.Encode([]rune(title)) {
		hash = (hash<<5 - hash) + int32(unit)
	}
	return int(hash)
}
