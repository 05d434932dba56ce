package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/doyensec/safeurl"
)

// LoadRecordsFile はスケジュールJSONファイルを読み込む。
func LoadRecordsFile(path string) ([]RawRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}
	var records []RawRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}
	return records, nil
}

// FetchRecords はスケジュールJSONをURLから1回取得する。
// safeurlによりプライベートIP・ループバック・リンクローカルへの
// リクエストはブロックされ、DNS再バインディング攻撃にも対応する。
// リモートからの継続的な同期は行わない。起動時の読み込み専用。
func FetchRecords(ctx context.Context, rawURL string, timeout time.Duration, maxSize int64) ([]RawRecord, error) {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	client := safeurl.Client(config).Client

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule response: %w", err)
	}

	var records []RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}
	return records, nil
}
