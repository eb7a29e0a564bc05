package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"legal-city.backend/internal/config"
	plog "legal-city.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origOpenMigrationDB := openMigrationDB
	origRunMigrations := runMigrations
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		openMigrationDB = origOpenMigrationDB
		runMigrations = origRunMigrations
		runServer = origRunServer
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "legalcity",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL:     "redis://localhost:6379",
			Enabled: false,
		},
		JWT: config.JWTConfig{
			Secret: "secret",
			Expiry: 24 * time.Hour,
		},
		OAuth: config.OAuthConfig{
			CallbackBaseURL: "http://localhost:18080/api/auth",
		},
		RateLimit: config.RateLimitConfig{
			MaxRequests:    100,
			Window:         15 * time.Minute,
			OAuthPerMinute: 60,
		},
		Frontend: config.FrontendConfig{
			URL: "http://localhost:3000",
		},
	}
}

func stubCommonHooks(t *testing.T) {
	t.Helper()
	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	openMigrationDB = func(string) (*sql.DB, error) { return sql.Open("sqlite3", ":memory:") }
	runMigrations = func(context.Context, *sql.DB) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}
	runServer = func(*http.Server) error { return http.ErrServerClosed }
}

func TestRunMainProcess_MigrationOpenError(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)
	openMigrationDB = func(string) (*sql.DB, error) { return nil, errors.New("no driver") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected migration connection error")
	}
}

func TestRunMainProcess_MigrationError(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)
	runMigrations = func(context.Context, *sql.DB) error { return errors.New("migration failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected migration error")
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Redis.Enabled = true
		return cfg
	}
	initRedis = func(string, string) error { return errors.New("redis down") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)
	stubCommonHooks(t)

	if err := runMainProcess(); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
