package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadRecordsFile はスケジュールJSONファイルの読み込みをテストする。
func TestLoadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	data := `[{"session_title":"Talk A","start_time":"2025-03-17 10:00:00","end_time":"2025-03-17 11:00:00"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecordsFile(path)
	if err != nil {
		t.Fatalf("LoadRecordsFile returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].SessionTitle != "Talk A" {
		t.Errorf("SessionTitle = %q, want %q", records[0].SessionTitle, "Talk A")
	}
}

// TestLoadRecordsFile_NotFound は存在しないファイルでエラーになることをテストする。
func TestLoadRecordsFile_NotFound(t *testing.T) {
	_, err := LoadRecordsFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

// TestLoadRecordsFile_InvalidJSON は不正なJSONでエラーになることをテストする。
func TestLoadRecordsFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRecordsFile(path); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

// TestFetchRecords_BlocksLoopback はループバックへの取得がブロックされることをテストする。
// httptestサーバーは127.0.0.1で起動されるため、safeurlがブロックする。
func TestFetchRecords_BlocksLoopback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer ts.Close()

	_, err := FetchRecords(context.Background(), ts.URL, 5*time.Second, 1024)
	if err == nil {
		t.Error("expected loopback fetch to be blocked, got nil error")
	}
}
