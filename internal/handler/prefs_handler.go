package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/gameplan/internal/kvstore"
	"github.com/hitoshi/gameplan/internal/model"
)

// hideNavKey は永続化ストア内でのナビゲーション表示設定の論理キー。
const hideNavKey = "hide_nav"

// PrefsHandler はUI設定のHTTPハンドラー。設定は計画と同じ
// キーバリューストアに保存される。
type PrefsHandler struct {
	store *kvstore.FileStore
}

// NewPrefsHandler はPrefsHandlerを生成する。
func NewPrefsHandler(store *kvstore.FileStore) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// navPrefPayload はナビゲーション表示設定のAPI表現。
type navPrefPayload struct {
	HideNav bool `json:"hide_nav"`
}

// GetNav はナビゲーション表示設定を返す。保存がなければfalse。
// GET /api/prefs/nav
func (h *PrefsHandler) GetNav(w http.ResponseWriter, r *http.Request) {
	var hideNav bool
	if _, err := h.store.Get(hideNavKey, &hideNav); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(navPrefPayload{HideNav: hideNav})
}

// SetNav はナビゲーション表示設定を保存する。
// PUT /api/prefs/nav
func (h *PrefsHandler) SetNav(w http.ResponseWriter, r *http.Request) {
	var payload navPrefPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	if err := h.store.Set(hideNavKey, payload.HideNav); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
