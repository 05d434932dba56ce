package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hitoshi/gameplan/internal/model"
)

// BuildFilterProperties はイベント列からフィルタUI向けの列挙を計算する。
// パス種別・トラック・形式の重複を除いた出現順リストと、
// 曜日ごとの最早開始・最遅終了時刻を返す。
// キャンセル済みイベントは時刻集計から除外する。
func BuildFilterProperties(events []model.Event) model.FilterProperties {
	props := model.FilterProperties{
		StartTimes: make(map[time.Weekday]time.Time),
		EndTimes:   make(map[time.Weekday]time.Time),
	}

	seenPasses := make(map[string]bool)
	seenTracks := make(map[string]bool)
	seenFormats := make(map[string]bool)

	for _, ev := range events {
		for _, pass := range splitTrimmed(ev.Passes) {
			if !seenPasses[pass] {
				seenPasses[pass] = true
				props.PassTypes = append(props.PassTypes, pass)
			}
		}
		for _, track := range ev.TrackList() {
			if !seenTracks[track] {
				seenTracks[track] = true
				props.Tracks = append(props.Tracks, track)
			}
		}
		if ev.Format != "" && !seenFormats[ev.Format] {
			seenFormats[ev.Format] = true
			props.Formats = append(props.Formats, ev.Format)
		}

		if ev.Cancelled() {
			continue
		}
		day := ev.StartTime.Weekday()
		if cur, ok := props.StartTimes[day]; !ok || ev.StartTime.Before(cur) {
			props.StartTimes[day] = ev.StartTime
		}
		if cur, ok := props.EndTimes[day]; !ok || ev.EndTime.After(cur) {
			props.EndTimes[day] = ev.EndTime
		}
	}

	return props
}

// LoadFilterPropertiesFile は事前計算済みのfilter.properties.jsonを読み込む。
func LoadFilterPropertiesFile(path string) (model.FilterProperties, error) {
	var props model.FilterProperties
	b, err := os.ReadFile(path)
	if err != nil {
		return props, fmt.Errorf("failed to read filter properties file: %w", err)
	}
	if err := json.Unmarshal(b, &props); err != nil {
		return props, fmt.Errorf("failed to parse filter properties file: %w", err)
	}
	return props, nil
}

// WriteFilterPropertiesFile はフィルタプロパティをJSONファイルに書き出す。
func WriteFilterPropertiesFile(path string, props model.FilterProperties) error {
	b, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode filter properties: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write filter properties file: %w", err)
	}
	return nil
}

// splitTrimmed はカンマ区切り文字列をトリム済みの空でないトークンに分割する。
func splitTrimmed(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
