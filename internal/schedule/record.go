// Package schedule はスケジュールデータセットの読み込みと
// イベントリポジトリの構築を提供する。
package schedule

// RawRecord はCSV変換後のスケジュールデータセット1行を表す。
// フィールド名は外部の変換ステップが出力するキーに合わせている。
type RawRecord struct {
	SessionTitle      string `json:"session_title"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Duration          string `json:"duration"`
	Day               string `json:"day"`
	Description       string `json:"description"`
	Takeaway          string `json:"takeaway"`
	IntendedAudience  string `json:"intended_audience"`
	Location          string `json:"location"`
	Tracks            string `json:"tracks"`
	Format            string `json:"format"`
	Passes            string `json:"passes"`
	Speakers          string `json:"speakers"`
	GDCVaultRecording string `json:"gdc_vault_recording"`
}

// recordedMarker はgdc_vault_recording欄が録画ありを示すリテラル値。
const recordedMarker = "Recorded"
