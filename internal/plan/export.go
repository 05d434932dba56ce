package plan

import (
	"encoding/json"

	"github.com/hitoshi/gameplan/internal/model"
)

// ExportDocument は計画のファイル書き出し形式。planned_events
// 1フィールドのみを持ち、再インポートで計画全体を上書きできる。
type ExportDocument struct {
	PlannedEvents []int `json:"planned_events"`
}

// Export は現在の計画を書き出し形式に変換する。
func Export(s *Store) ExportDocument {
	ids := s.List()
	if ids == nil {
		ids = []int{}
	}
	return ExportDocument{PlannedEvents: ids}
}

// ParseImport はインポートされたファイル内容を解析してID列を返す。
// 解析に失敗した場合は利用者に提示可能なAPIErrorを返し、
// 現在の計画には手を付けない。
func ParseImport(data []byte) ([]int, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, model.NewImportParseFailedError(err.Error())
	}
	if doc.PlannedEvents == nil {
		return nil, model.NewImportParseFailedError("planned_events field is missing")
	}
	return doc.PlannedEvents, nil
}
