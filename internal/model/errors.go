// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, plan, filter, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEventNotFound       = "EVENT_NOT_FOUND"
	ErrCodeDuplicatePlan       = "DUPLICATE_PLAN"
	ErrCodeImportParseFailed   = "IMPORT_PARSE_FAILED"
	ErrCodeImportNeedsConfirm  = "IMPORT_NEEDS_CONFIRM"
	ErrCodeNoDraftFilter       = "NO_DRAFT_FILTER"
	ErrCodeNotInTimeSlotMode   = "NOT_IN_TIME_SLOT_MODE"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
)

// NewEventNotFoundError はイベント未検出エラーを生成する。
func NewEventNotFoundError(id int) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定されたイベントが見つかりません: %d", id),
		Category: "plan",
		Action:   "イベントIDを確認してください。",
	}
}

// NewDuplicatePlanError は計画済みイベントの二重追加エラーを生成する。
func NewDuplicatePlanError(id int) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicatePlan,
		Message:  fmt.Sprintf("このイベントは既に計画に追加されています: %d", id),
		Category: "plan",
		Action:   "計画一覧から該当イベントを確認してください。",
	}
}

// NewImportParseFailedError はプランインポートのパース失敗エラーを生成する。
// 現在のプランは変更されない。
func NewImportParseFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeImportParseFailed,
		Message:  fmt.Sprintf("インポートファイルの解析に失敗しました: %s", reason),
		Category: "validation",
		Action:   "エクスポートされたプランファイル（planned_eventsを含むJSON）を指定してください。",
	}
}

// NewImportNeedsConfirmError は非空プランへの上書きインポート確認エラーを生成する。
func NewImportNeedsConfirmError() *APIError {
	return &APIError{
		Code:     ErrCodeImportNeedsConfirm,
		Message:  "現在のプランが上書きされます。確認が必要です。",
		Category: "plan",
		Action:   "上書きしてよければconfirm=trueを指定して再実行してください。",
	}
}

// NewNoDraftFilterError はドラフトフィルタ未作成エラーを生成する。
func NewNoDraftFilterError() *APIError {
	return &APIError{
		Code:     ErrCodeNoDraftFilter,
		Message:  "適用できるドラフトフィルタがありません。",
		Category: "filter",
		Action:   "先にフィルタのドラフトを作成してください。",
	}
}

// NewNotInTimeSlotModeError はタイムスロットモード外での窓送り操作エラーを生成する。
func NewNotInTimeSlotModeError() *APIError {
	return &APIError{
		Code:     ErrCodeNotInTimeSlotMode,
		Message:  "タイムスロットモードが有効ではありません。",
		Category: "filter",
		Action:   "in_time_slot_modeを有効にしたフィルタを適用してください。",
	}
}

// NewInvalidRequestError はリクエスト不正エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}
