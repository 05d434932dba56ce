// Package kvstore はローカルファイルに裏付けられたキーバリュー永続化を提供する。
// 計画済みイベントのIDリストとUI設定のような少数の論理キーを想定しており、
// スキーマバージョニングは持たない。
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileName はストアの実体となるJSONファイル名。
const fileName = "gameplan.json"

// FileStore はJSONファイル1つにキーバリューを書き込むストア。
// 読み取り失敗・キー不在は「前回状態なし」として扱いエラーにしない。
type FileStore struct {
	path string
	mu   sync.Mutex
}

// Open は指定ディレクトリ配下にストアを開く。ディレクトリがなければ作成する。
func Open(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, fileName)}, nil
}

// Path はストアファイルの絶対位置を返す。ログ出力用。
func (s *FileStore) Path() string {
	return s.path
}

// Get はキーの値をvにデコードする。キーが存在しない場合は(false, nil)を返す。
// ファイルが存在しない・壊れている場合も「状態なし」として(false, nil)を返す。
func (s *FileStore) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.readAll()
	raw, ok := data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// キー単位の破損も「状態なし」に吸収する
		return false, nil
	}
	return true, nil
}

// Set はキーの値を書き込み、ファイル全体を同期的に書き戻す。
// 書き込みは一時ファイル経由のリネームで行い、部分書き込みを残さない。
func (s *FileStore) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.readAll()
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	data[key] = raw
	return s.writeAll(data)
}

// readAll はファイル全体を読み込む。不在・破損は空のマップとして扱う。
func (s *FileStore) readAll() map[string]json.RawMessage {
	data := make(map[string]json.RawMessage)
	b, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return make(map[string]json.RawMessage)
	}
	return data
}

// writeAll はファイル全体をアトミックに書き戻す。
func (s *FileStore) writeAll(data map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
