package main

import (
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_analysis/internal/app/router"
	analysishandler "stock_analysis/internal/feature/analysis/transport/handler"
	analysisusecase "stock_analysis/internal/feature/analysis/usecase"
	authadapters "stock_analysis/internal/feature/auth/adapters"
	authhandler "stock_analysis/internal/feature/auth/transport/handler"
	authusecase "stock_analysis/internal/feature/auth/usecase"
	pricesadapters "stock_analysis/internal/feature/prices/adapters"
	priceshandler "stock_analysis/internal/feature/prices/transport/handler"
	pricesusecase "stock_analysis/internal/feature/prices/usecase"
	saadapters "stock_analysis/internal/feature/savedanalysis/adapters"
	sahandler "stock_analysis/internal/feature/savedanalysis/transport/handler"
	sausecase "stock_analysis/internal/feature/savedanalysis/usecase"
	stocksadapters "stock_analysis/internal/feature/stocks/adapters"
	stockshandler "stock_analysis/internal/feature/stocks/transport/handler"
	stocksusecase "stock_analysis/internal/feature/stocks/usecase"
	"stock_analysis/internal/platform/cache"
	"stock_analysis/internal/platform/config"
	platformdb "stock_analysis/internal/platform/db"
	jwtmw "stock_analysis/internal/platform/jwt"
	platformredis "stock_analysis/internal/platform/redis"
)

func main() {
	// 設定
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db, err := platformdb.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Host == "" {
		slog.Warn("REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	stockRepo := stocksadapters.NewStockRepository(db)
	priceRepo := pricesadapters.NewPriceRepository(db)
	saRepo := saadapters.NewSavedAnalysisRepository(db)

	// Redisキャッシュでラップ
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, cfg.Redis.CacheTTL, priceRepo, "prices")

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	stockUC := stocksusecase.NewStockUsecase(stockRepo)
	pricesUC := pricesusecase.NewPricesUsecase(cachedPriceRepo)
	importUC := pricesusecase.NewImportUsecase(cachedPriceRepo, stockUC)
	analysisUC := analysisusecase.NewAnalysisUsecase(cachedPriceRepo)
	saUC := sausecase.NewSavedAnalysisUsecase(saRepo)

	// Handler
	h := router.Handlers{
		Auth:          authhandler.NewAuthHandler(authUC),
		Stocks:        stockshandler.NewStockHandler(stockUC),
		Prices:        priceshandler.NewPriceHandler(pricesUC, importUC),
		Analysis:      analysishandler.NewAnalysisHandler(analysisUC),
		SavedAnalysis: sahandler.NewSavedAnalysisHandler(saUC),
	}

	// ルータ生成
	r := router.NewRouter(h, cfg.JWT.Secret)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWT.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
