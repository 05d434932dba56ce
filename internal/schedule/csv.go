package schedule

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConvertCSV は生スケジュールCSVをレコード列に変換する。
// 引用符付きセル内の改行・カンマ・二重引用符はencoding/csvが扱う。
// ヘッダは前後空白をトリムし、空白をアンダースコアに置換して
// RawRecordのフィールド名に正規化する。
func ConvertCSV(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				fields[h] = row[i]
			} else {
				fields[h] = ""
			}
		}
		records = append(records, recordFromFields(fields))
	}
	return records, nil
}

// ConvertCSVFile はCSVファイルを読み込んでスケジュールJSONファイルを書き出す。
func ConvertCSVFile(csvPath, jsonPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	records, err := ConvertCSV(f)
	if err != nil {
		return 0, err
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode schedule json: %w", err)
	}
	if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write schedule json: %w", err)
	}
	return len(records), nil
}

// normalizeHeader はヘッダ値をレコードのキー名に正規化する。
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.Trim(h, `"`)
	h = strings.ToLower(h)
	return strings.ReplaceAll(h, " ", "_")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// recordFromFields は正規化済みヘッダ名のマップからRawRecordを組み立てる。
func recordFromFields(fields map[string]string) RawRecord {
	return RawRecord{
		SessionTitle:      fields["session_title"],
		StartTime:         fields["start_time"],
		EndTime:           fields["end_time"],
		Duration:          fields["duration"],
		Day:               fields["day"],
		Description:       fields["description"],
		Takeaway:          fields["takeaway"],
		IntendedAudience:  fields["intended_audience"],
		Location:          fields["location"],
		Tracks:            fields["tracks"],
		Format:            fields["format"],
		Passes:            fields["passes"],
		Speakers:          fields["speakers"],
		GDCVaultRecording: fields["gdc_vault_recording"],
	}
}
