package model

import (
	"testing"
	"time"
)

// TestTitleHash_Deterministic は同一タイトルから常に同じIDが得られることを検証する。
func TestTitleHash_Deterministic(t *testing.T) {
	titles := []string{
		"Advanced Graphics Summit: Opening Remarks",
		"Talk A",
		"日本語タイトルのセッション",
		"",
	}
	for _, title := range titles {
		first := TitleHash(title)
		second := TitleHash(title)
		if first != second {
			t.Errorf("TitleHash(%q) not deterministic: %d != %d", title, first, second)
		}
	}
}

func TestTitleHash_EmptyString_IsZero(t *testing.T) {
	if h := TitleHash(""); h != 0 {
		t.Errorf("TitleHash(\"\") = %d, want 0", h)
	}
}

func TestTitleHash_DistinctTitles_DistinctIDs(t *testing.T) {
	a := TitleHash("Talk A")
	b := TitleHash("Talk B")
	if a == b {
		t.Errorf("expected distinct hashes for distinct titles, both = %d", a)
	}
}

// TestTitleHash_SameTitle_Collides は同一タイトルが同じIDに潰れる
// 既知の制限（仕様上の許容リスク）をそのまま固定する。
func TestTitleHash_SameTitle_Collides(t *testing.T) {
	a := TitleHash("Duplicate Session Title")
	b := TitleHash("Duplicate Session Title")
	if a != b {
		t.Errorf("same title must collapse to same id: %d != %d", a, b)
	}
}

// TestTitleHash_32BitWrap は長い入力でも32bit符号付きに収まることを検証する。
func TestTitleHash_32BitWrap(t *testing.T) {
	long := ""
	for i := 0; i < 500; i++ {
		long += "abcdefghij"
	}
	h := TitleHash(long)
	if int64(h) > 1<<31-1 || int64(h) < -(1<<31) {
		t.Errorf("TitleHash must stay within int32 range, got %d", h)
	}
}

func TestEvent_Cancelled(t *testing.T) {
	cancelled := Event{}
	if !cancelled.Cancelled() {
		t.Error("event with zero start/end should be cancelled")
	}

	ok := Event{
		StartTime: time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 17, 11, 0, 0, 0, time.UTC),
	}
	if ok.Cancelled() {
		t.Error("event with valid times should not be cancelled")
	}
}

func TestEvent_Duration(t *testing.T) {
	e := Event{
		StartTime: time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 17, 11, 30, 0, 0, time.UTC),
	}
	if e.Duration() != 90*time.Minute {
		t.Errorf("Duration = %v, want %v", e.Duration(), 90*time.Minute)
	}
}

func TestEvent_TrackList_SplitsAndTrims(t *testing.T) {
	e := Event{Tracks: "Design, Production , Programming"}
	got := e.TrackList()
	want := []string{"Design", "Production", "Programming"}
	if len(got) != len(want) {
		t.Fatalf("TrackList length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TrackList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEvent_TrackList_EmptyField(t *testing.T) {
	e := Event{Tracks: ""}
	if got := e.TrackList(); len(got) != 0 {
		t.Errorf("TrackList of empty field = %v, want empty", got)
	}
}

// TestEvent_Overlaps_HalfOpen は半開区間[start, end)での重なり判定を検証する。
// 片方の終了時刻＝もう片方の開始時刻のケースは重ならない。
func TestEvent_Overlaps_HalfOpen(t *testing.T) {
	day := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name           string
		aStart, aEnd   time.Time
		bStart, bEnd   time.Time
		want           bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"back to back", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
		{"containment", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Event{StartTime: tt.aStart, EndTime: tt.aEnd}
			b := Event{StartTime: tt.bStart, EndTime: tt.bEnd}
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// 可換性
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
