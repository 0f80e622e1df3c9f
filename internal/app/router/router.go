// Package router assembles the gin engine and binds every HTTP route.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "stock_analysis/internal/feature/analysis/transport/handler"
	authhandler "stock_analysis/internal/feature/auth/transport/handler"
	priceshandler "stock_analysis/internal/feature/prices/transport/handler"
	sahandler "stock_analysis/internal/feature/savedanalysis/transport/handler"
	stockshandler "stock_analysis/internal/feature/stocks/transport/handler"
	platformhandler "stock_analysis/internal/platform/http/handler"
	jwtmw "stock_analysis/internal/platform/jwt"
	"stock_analysis/internal/shared/ratelimiter"
)

// Handlers groups the feature handlers the router binds.
type Handlers struct {
	Auth          *authhandler.AuthHandler
	Stocks        *stockshandler.StockHandler
	Prices        *priceshandler.PriceHandler
	Analysis      *analysishandler.AnalysisHandler
	SavedAnalysis *sahandler.SavedAnalysisHandler
}

// NewRouter builds the gin engine with all routes registered.
// Everything below the auth group requires a valid JWT.
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// ブラウザのチャートフロントエンドから呼ばれるためCORSを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// ブルートフォース対策として認証エンドポイントにレートリミットを適用
	authLimiter := ratelimiter.NewLimiter(10, time.Minute)
	// 新規ユーザー登録
	r.POST("/signup", rateLimit(authLimiter), h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", rateLimit(authLimiter), h.Auth.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		// 銘柄
		auth.GET("/stocks", h.Stocks.List)
		auth.POST("/stocks", h.Stocks.Create)

		// 価格データ
		auth.GET("/stocks/:symbol/prices", h.Prices.GetPricesHandler)
		auth.POST("/stocks/:symbol/prices/import", h.Prices.ImportHandler)

		// テクニカル指標と要約統計
		auth.GET("/stocks/:symbol/indicators", h.Analysis.GetIndicatorsHandler)
		auth.GET("/stocks/:symbol/stats", h.Analysis.GetStatsHandler)

		// 保存済み分析設定
		auth.POST("/analyses", h.SavedAnalysis.Create)
		auth.GET("/analyses", h.SavedAnalysis.List)
		auth.GET("/analyses/:id", h.SavedAnalysis.Get)
		auth.DELETE("/analyses/:id", h.SavedAnalysis.Delete)
	}

	return r
}

// rateLimit はクライアントIPごとに試行回数を制限するミドルウェアを返します。
func rateLimit(l ratelimiter.LimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
