// Package db opens the gorm database connection used by every repository.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "stock_analysis/internal/feature/auth/domain/entity"
	pricesadapters "stock_analysis/internal/feature/prices/adapters"
	saentity "stock_analysis/internal/feature/savedanalysis/domain/entity"
	stocksentity "stock_analysis/internal/feature/stocks/domain/entity"
	"stock_analysis/internal/platform/config"
)

// OpenDB connects to MySQL when DB_HOST is configured, otherwise to a local
// SQLite file. TranslateError is enabled so repositories can match
// gorm.ErrDuplicatedKey regardless of the dialect.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)

	if cfg.DB.Host != "" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)

		// コンテナ起動直後はMySQL側の準備待ちでリトライする
		deadline := time.Now().Add(60 * time.Second)
		for {
			gdb, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("DB connect failed after 60s: %w", err)
			}
			slog.Warn("DB connect failed, retrying...", "error", err)
			time.Sleep(3 * time.Second)
		}
	} else {
		gdb, err = gorm.Open(gsqlite.Open(cfg.DB.SQLitePath), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %q: %w", cfg.DB.SQLitePath, err)
		}
	}

	if cfg.DB.RunMigrations {
		if err := gdb.AutoMigrate(
			&authentity.User{},
			&stocksentity.Stock{},
			&pricesadapters.PriceModel{},
			&saentity.SavedAnalysis{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return gdb, nil
}
