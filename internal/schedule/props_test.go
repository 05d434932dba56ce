package schedule

import (
	"path/filepath"
	"testing"
	"time"
)

// TestBuildFilterProperties_Enumerations は重複除去済みの選択肢列挙を検証する。
func TestBuildFilterProperties_Enumerations(t *testing.T) {
	repo := Build(testRecords(), NewSanitizer())
	props := BuildFilterProperties(repo.All())

	wantPasses := []string{"All Access", "Core"}
	if len(props.PassTypes) != len(wantPasses) {
		t.Fatalf("PassTypes = %v, want %v", props.PassTypes, wantPasses)
	}
	for i := range wantPasses {
		if props.PassTypes[i] != wantPasses[i] {
			t.Errorf("PassTypes[%d] = %q, want %q", i, props.PassTypes[i], wantPasses[i])
		}
	}

	wantTracks := []string{"Design", "Programming"}
	if len(props.Tracks) != len(wantTracks) {
		t.Fatalf("Tracks = %v, want %v", props.Tracks, wantTracks)
	}
	for i := range wantTracks {
		if props.Tracks[i] != wantTracks[i] {
			t.Errorf("Tracks[%d] = %q, want %q", i, props.Tracks[i], wantTracks[i])
		}
	}

	wantFormats := []string{"Lecture", "Panel"}
	if len(props.Formats) != len(wantFormats) {
		t.Fatalf("Formats = %v, want %v", props.Formats, wantFormats)
	}
}

// TestBuildFilterProperties_DayBounds は曜日ごとの最早開始・最遅終了を検証する。
func TestBuildFilterProperties_DayBounds(t *testing.T) {
	repo := Build(testRecords(), NewSanitizer())
	props := BuildFilterProperties(repo.All())

	// 2025-03-17 は月曜日
	start, ok := props.StartTimes[time.Monday]
	if !ok {
		t.Fatal("expected Monday start time")
	}
	wantStart := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("Monday start = %v, want %v", start, wantStart)
	}

	end, ok := props.EndTimes[time.Monday]
	if !ok {
		t.Fatal("expected Monday end time")
	}
	wantEnd := time.Date(2025, 3, 17, 11, 30, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("Monday end = %v, want %v", end, wantEnd)
	}
}

// TestBuildFilterProperties_CancelledExcludedFromBounds はキャンセル済み
// イベントが時刻集計に影響しないことを検証する。
func TestBuildFilterProperties_CancelledExcludedFromBounds(t *testing.T) {
	repo := Build(testRecords(), NewSanitizer())
	props := BuildFilterProperties(repo.All())

	// キャンセル済みイベントのゼロ時刻（木曜日 year 1）が混入していないこと
	for day := range props.StartTimes {
		if props.StartTimes[day].IsZero() {
			t.Errorf("day %v has zero start time", day)
		}
	}
}

// TestFilterProperties_FileRoundTrip は書き出しと読み込みの往復を検証する。
func TestFilterProperties_FileRoundTrip(t *testing.T) {
	repo := Build(testRecords(), NewSanitizer())
	props := BuildFilterProperties(repo.All())

	path := filepath.Join(t.TempDir(), "filter.properties.json")
	if err := WriteFilterPropertiesFile(path, props); err != nil {
		t.Fatalf("WriteFilterPropertiesFile returned error: %v", err)
	}

	loaded, err := LoadFilterPropertiesFile(path)
	if err != nil {
		t.Fatalf("LoadFilterPropertiesFile returned error: %v", err)
	}

	if len(loaded.PassTypes) != len(props.PassTypes) {
		t.Errorf("PassTypes = %v, want %v", loaded.PassTypes, props.PassTypes)
	}
	if !loaded.StartTimes[time.Monday].Equal(props.StartTimes[time.Monday]) {
		t.Errorf("Monday start = %v, want %v", loaded.StartTimes[time.Monday], props.StartTimes[time.Monday])
	}
}
