package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Schedule dataset
	SchedulePath    string
	ScheduleURL     string
	FilterPropsPath string

	// Persistence
	DataDir string

	// Remote dataset fetch
	FetchTimeout time.Duration
	FetchMaxSize int64

	// Rate Limit
	RateLimitGeneral  int
	RateLimitMutation int

	// Countdown
	CountdownInterval time.Duration

	// Time-slot mode
	TimeSlotWidth time.Duration

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// スケジュールデータセットの入力元（SCHEDULE_PATHまたはSCHEDULE_URL）が
// どちらも未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.SchedulePath = os.Getenv("SCHEDULE_PATH")
	cfg.ScheduleURL = os.Getenv("SCHEDULE_URL")
	if cfg.SchedulePath == "" && cfg.ScheduleURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: need SCHEDULE_PATH or SCHEDULE_URL")
	}

	// Optional fields with defaults
	cfg.FilterPropsPath = getEnvString("FILTER_PROPS_PATH", "")
	cfg.DataDir = getEnvString("DATA_DIR", "./data")
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitMutation = getEnvInt("RATE_LIMIT_MUTATION", 30)
	cfg.CountdownInterval = getEnvDuration("COUNTDOWN_INTERVAL", 30*time.Second)
	cfg.TimeSlotWidth = getEnvDuration("TIME_SLOT_WIDTH", 2*time.Hour)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
