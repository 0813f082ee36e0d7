package db

import (
	"fmt"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(DSN(cfg)), Options(cfg, log))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	// コネクションプール
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB, nil
}

// DATABASE_URL があれば最優先で使う
func DSN(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}

	pg := cfg.Postgres
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DB, pg.SSLMode,
	)
}

// gormのログをzerologに流す
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Msgf(format, args...)
}

// gorm共通設定（重複キーをgorm.ErrDuplicatedKeyに変換する）
func Options(cfg config.Config, log zerolog.Logger) *gorm.Config {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	// 注文はユーザー削除後も残すのでFKは張らない
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: logger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      level,
			// 登録やログインで毎回出るので記録しない
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

// テーブル作成
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Review{},
		&model.Order{},
		&model.OrderItem{},
	)
}

func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
