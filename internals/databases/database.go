package database

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skb_backend/internals/configs"
)

var DB *gorm.DB

// DSN builds the connection string. statement_timeout is only attached for
// the application pool; migrations run without it.
func DSN(cfg configs.DatabaseConfig, withTimeout bool) string {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		raw = fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			url.QueryEscape(cfg.User),
			url.QueryEscape(cfg.Password),
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("sslmode") == "" && cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	if withTimeout {
		q.Set("application_name", "skb_backend")
		if cfg.StatementTimeout > 0 {
			q.Set("options", fmt.Sprintf("-c statement_timeout=%d", cfg.StatementTimeout.Milliseconds()))
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func ConnectDB(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	logrus.WithField("host", cfg.Host).Info("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(cfg, true),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	logrus.Info("database connected")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Warn("pool tune skipped")
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// WarmUpQueries fills the pool in the background so the first requests
// don't pay the connection cost.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Ping(); err != nil {
			logrus.WithError(err).Warn("warm-up ping failed")
			return
		}
		db.Exec("SELECT 1 FROM tournaments LIMIT 1")
	}()
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
