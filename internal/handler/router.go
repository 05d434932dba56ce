package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/gameplan/internal/kvstore"
	"github.com/hitoshi/gameplan/internal/metrics"
	"github.com/hitoshi/gameplan/internal/middleware"
	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/plan"
	"github.com/hitoshi/gameplan/internal/planner"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// ドメイン
	Session          *planner.Session
	Countdown        *plan.Countdown
	FilterProperties model.FilterProperties
	SlotWidth        time.Duration
	PrefsStore       *kvstore.FileStore

	// メトリクス
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → SecurityHeaders → CORS → RateLimit(General)
//
// /healthと/metricsはレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	eventHandler := NewEventHandler(deps.Session, deps.FilterProperties)
	filterHandler := NewFilterHandler(deps.Session, deps.FilterProperties, deps.SlotWidth)
	planHandler := NewPlanHandler(deps.Session, deps.Countdown)
	prefsHandler := NewPrefsHandler(deps.PrefsStore)

	// --- レート制限の外のルート ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)、計画変更にはMutationを追加
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// イベント閲覧
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListBatch)
			r.Get("/{id}", eventHandler.GetEvent)
		})

		r.Get("/api/filter-properties", eventHandler.GetFilterProperties)

		// フィルタのドラフト編集と適用
		r.Route("/api/filter", func(r chi.Router) {
			r.Put("/draft", filterHandler.SaveDraft)
			r.Delete("/draft", filterHandler.DiscardDraft)
			r.Post("/apply", filterHandler.ApplyDraft)
			r.Post("/slot/advance", filterHandler.AdvanceSlot)
		})

		r.Put("/api/search", filterHandler.SetQuery)

		// 計画管理
		r.Route("/api/plan", func(r chi.Router) {
			r.Get("/", planHandler.ListPlan)
			r.Get("/next", planHandler.NextEvent)
			r.Get("/export", planHandler.ExportPlan)

			// POST /api/plan/import - 上書きインポート（変更専用レート制限を追加）
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/import", planHandler.ImportPlan)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(deps.RateLimiter.MutationMiddleware())
				r.Post("/", planHandler.AddEvent)
				r.Delete("/", planHandler.RemoveEvent)
			})
		})

		// UI設定
		r.Route("/api/prefs/nav", func(r chi.Router) {
			r.Get("/", prefsHandler.GetNav)
			r.Put("/", prefsHandler.SetNav)
		})
	})

	return r
}
