package handler

import (
	"encoding/json"
	"net/http"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func decodeBatch(t *testing.T, data []byte) batchResponse {
	t.Helper()
	var resp batchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("failed to decode batch response: %v\nraw: %s", err, data)
	}
	return resp
}

// TestListBatch_Pagination は25件の結果が10件、10件、5件、空の順で
// 返ることを検証する。
func TestListBatch_Pagination(t *testing.T) {
	env := newTestEnv(t, manyEvents(25))

	wantSizes := []int{10, 10, 5, 0}
	for i, want := range wantSizes {
		w := env.do(t, http.MethodGet, "/api/events", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("batch %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
		resp := decodeBatch(t, w.Body.Bytes())
		if len(resp.Events) != want {
			t.Errorf("batch %d: len(events) = %d, want %d", i+1, len(resp.Events), want)
		}
		if resp.Total != 25 {
			t.Errorf("batch %d: total = %d, want 25", i+1, resp.Total)
		}
	}
}

// TestListBatch_Reset はbatch=resetで先頭からやり直せることを検証する。
func TestListBatch_Reset(t *testing.T) {
	env := newTestEnv(t, manyEvents(25))

	first := decodeBatch(t, env.do(t, http.MethodGet, "/api/events", nil).Body.Bytes())
	env.do(t, http.MethodGet, "/api/events", nil)

	again := decodeBatch(t, env.do(t, http.MethodGet, "/api/events?batch=reset", nil).Body.Bytes())
	if len(again.Events) != 10 {
		t.Fatalf("len(events) = %d after reset, want 10", len(again.Events))
	}
	if again.Events[0].ID != first.Events[0].ID {
		t.Errorf("first event after reset = %d, want %d", again.Events[0].ID, first.Events[0].ID)
	}
}

// TestListBatch_SortedByDuration は結果が所要時間昇順であることを検証する。
func TestListBatch_SortedByDuration(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	resp := decodeBatch(t, env.do(t, http.MethodGet, "/api/events", nil).Body.Bytes())
	if len(resp.Events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(resp.Events))
	}
	// Talk C (30分) → Talk A (60分) → Talk B (60分、元順序維持)
	wantIDs := []int{3, 1, 2}
	for i, want := range wantIDs {
		if resp.Events[i].ID != want {
			t.Errorf("events[%d].ID = %d, want %d", i, resp.Events[i].ID, want)
		}
	}
}

// TestListBatch_InvalidBatchParam は未知のbatch指定が400になることを検証する。
func TestListBatch_InvalidBatchParam(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	w := env.do(t, http.MethodGet, "/api/events?batch=previous", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// TestGetEvent_Detail はイベント詳細と重複一覧を検証する。
func TestGetEvent_Detail(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	// Talk AとTalk Bを計画すると相互に重複する
	env.do(t, http.MethodPost, "/api/plan/1", nil)
	env.do(t, http.MethodPost, "/api/plan/2", nil)

	w := env.do(t, http.MethodGet, "/api/events/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp eventDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.ID != 1 || resp.Title != "Talk A" {
		t.Errorf("event = %d %q, want 1 %q", resp.ID, resp.Title, "Talk A")
	}
	if !resp.Planned {
		t.Error("planned = false, want true")
	}
	if !resp.HasConflict {
		t.Error("has_conflict = false, want true")
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0] != 2 {
		t.Errorf("conflicts = %v, want [2]", resp.Conflicts)
	}
}

// TestGetEvent_NotFound は未知のIDで404と統一エラーが返ることを検証する。
func TestGetEvent_NotFound(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	w := env.do(t, http.MethodGet, "/api/events/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body apiErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Code != "EVENT_NOT_FOUND" {
		t.Errorf("code = %q, want %q", body.Code, "EVENT_NOT_FOUND")
	}
}

// TestGetEvent_InvalidID は整数でないIDが400になることを検証する。
func TestGetEvent_InvalidID(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	w := env.do(t, http.MethodGet, "/api/events/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// TestGetFilterProperties は選択肢列挙が返ることを検証する。
func TestGetFilterProperties(t *testing.T) {
	env := newTestEnv(t, fixtureEvents())

	w := env.do(t, http.MethodGet, "/api/filter-properties", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		PassTypes []string `json:"pass_types"`
		Tracks    []string `json:"tracks"`
		Formats   []string `json:"formats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(resp.Tracks) != 3 {
		t.Errorf("len(tracks) = %d, want 3", len(resp.Tracks))
	}
}
