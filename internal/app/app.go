package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/gameplan/internal/config"
	"github.com/hitoshi/gameplan/internal/handler"
	"github.com/hitoshi/gameplan/internal/kvstore"
	"github.com/hitoshi/gameplan/internal/logger"
	"github.com/hitoshi/gameplan/internal/metrics"
	"github.com/hitoshi/gameplan/internal/middleware"
	"github.com/hitoshi/gameplan/internal/model"
	"github.com/hitoshi/gameplan/internal/plan"
	"github.com/hitoshi/gameplan/internal/planner"
	"github.com/hitoshi/gameplan/internal/schedule"
)

// Init はアプリケーションの初期化を行う。
// ローカルの.envがあれば読み込み、環境変数からConfigを読み込み、
// JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. ローカル開発用の.envを読み込む（なければ何もしない）
	_ = godotenv.Load()

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	// convert はローカルファイル変換のため、設定読み込みをスキップする
	if cmd == CommandConvert {
		logger.SetupDefault(w)
		return runConvert(args[1:])
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandProps:
		return runProps(cfg, args[1:])
	default:
		return runServe(cfg)
	}
}

// loadRepository はスケジュールデータセットを読み込んでリポジトリを構築する。
// SCHEDULE_PATHが設定されていればローカルファイルを、
// そうでなければSCHEDULE_URLからリモート取得する。
func loadRepository(cfg *config.Config) (*schedule.Repository, error) {
	var records []schedule.RawRecord
	var err error

	if cfg.SchedulePath != "" {
		records, err = schedule.LoadRecordsFile(cfg.SchedulePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule dataset: %w", err)
		}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		records, err = schedule.FetchRecords(ctx, cfg.ScheduleURL, cfg.FetchTimeout, cfg.FetchMaxSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch schedule dataset: %w", err)
		}
	}

	repo := schedule.Build(records, schedule.NewSanitizer())
	slog.Info("schedule dataset loaded",
		slog.Int("records", len(records)),
		slog.Int("events", repo.Len()),
	)
	return repo, nil
}

// runServe はAPIサーバーモードで起動する。
// データセットを読み込み、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. スケジュールデータセットの読み込み
	repo, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	// 2. フィルタ選択肢の準備（生成済みファイルがあればそれを使う）
	var props model.FilterProperties
	if cfg.FilterPropsPath != "" {
		props, err = schedule.LoadFilterPropertiesFile(cfg.FilterPropsPath)
		if err != nil {
			return fmt.Errorf("failed to load filter properties: %w", err)
		}
	} else {
		props = schedule.BuildFilterProperties(repo.All())
	}

	// 3. 計画の永続化ストア
	store, err := kvstore.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	planStore := plan.NewStore(plan.NewKVPersistence(store))

	// 4. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	planStore.OnChange(func() {
		collector.SetPlanSize(planStore.Len())
	})
	collector.SetPlanSize(planStore.Len())

	// 5. プランナーセッションとカウントダウン
	session := planner.NewSession(repo, planStore, collector)
	countdown := plan.NewCountdown(planStore, repo, cfg.CountdownInterval)

	countdownCtx, stopCountdown := context.WithCancel(context.Background())
	defer stopCountdown()
	go countdown.Run(countdownCtx)

	// 6. レート制限（configはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.MutationRate = rate.Limit(float64(cfg.RateLimitMutation) / 60.0)
	rateLimiterCfg.MutationBurst = cfg.RateLimitMutation
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),

		Session:          session,
		Countdown:        countdown,
		FilterProperties: props,
		SlotWidth:        cfg.TimeSlotWidth,
		PrefsStore:       store,

		MetricsGatherer: registry,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")
	stopCountdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runConvert はスケジュールCSVをJSONデータセットへ変換する。
// 引数は入力CSVパスと出力JSONパスの2つ。
func runConvert(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: gameplan convert <input.csv> <output.json>")
	}

	count, err := schedule.ConvertCSVFile(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to convert schedule CSV: %w", err)
	}

	slog.Info("schedule CSV converted",
		slog.String("input", args[0]),
		slog.String("output", args[1]),
		slog.Int("records", count),
	)
	return nil
}

// runProps はデータセットからフィルタ選択肢ファイルを生成する。
// 出力先は引数で指定し、省略時はFILTER_PROPS_PATHを使う。
func runProps(cfg *config.Config, args []string) error {
	outPath := cfg.FilterPropsPath
	if len(args) > 0 {
		outPath = args[0]
	}
	if outPath == "" {
		return fmt.Errorf("usage: gameplan props <output.json> (or set FILTER_PROPS_PATH)")
	}

	repo, err := loadRepository(cfg)
	if err != nil {
		return err
	}

	props := schedule.BuildFilterProperties(repo.All())
	if err := schedule.WriteFilterPropertiesFile(outPath, props); err != nil {
		return fmt.Errorf("failed to write filter properties: %w", err)
	}

	slog.Info("filter properties generated",
		slog.String("output", outPath),
		slog.Int("pass_types", len(props.PassTypes)),
		slog.Int("tracks", len(props.Tracks)),
		slog.Int("formats", len(props.Formats)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// ローカルのAPIサーバーの/healthエンドポイントを叩き、200以外はエラーを返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
