package schedule

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer はデータセット由来のテキスト欄をプレーンテキストに正規化する。
// データセットは信頼境界であり、説明文などにHTML断片が紛れていても
// そのまま保存・配信しない。
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer はSanitizerの新しいインスタンスを生成する。
// StrictPolicyは全タグを除去し、script/style要素は中身ごと落とす。
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// PlainText はHTML断片や文字実体参照を含みうる入力をプレーンテキストに変換する。
// タグを除去したうえで実体参照を復元し、前後の空白をトリムする。
// 同一入力に対して常に同一出力を返す。
func (s *Sanitizer) PlainText(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return strings.TrimSpace(raw)
	}
	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
