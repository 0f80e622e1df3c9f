// Package handler はsavedanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/savedanalysis/domain/entity"
	"stock_analysis/internal/feature/savedanalysis/usecase"
	jwtmw "stock_analysis/internal/platform/jwt"
)

// SavedAnalysisUsecase は保存済み分析設定のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SavedAnalysisUsecase interface {
	Create(ctx context.Context, userID uint, a *entity.SavedAnalysis) (*entity.SavedAnalysis, error)
	List(ctx context.Context, userID uint) ([]entity.SavedAnalysis, error)
	Get(ctx context.Context, userID, id uint) (*entity.SavedAnalysis, error)
	Delete(ctx context.Context, userID, id uint) error
}

// SavedAnalysisHandler は保存済み分析設定のHTTPリクエストを処理します。
type SavedAnalysisHandler struct {
	uc SavedAnalysisUsecase
}

// NewSavedAnalysisHandler は指定されたusecaseでハンドラーの新しいインスタンスを生成します。
func NewSavedAnalysisHandler(uc SavedAnalysisUsecase) *SavedAnalysisHandler {
	return &SavedAnalysisHandler{uc: uc}
}

// Create は新しい分析設定を保存します。
//
// エンドポイント例:
// POST /analyses
func (h *SavedAnalysisHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req api.SavedAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	a, err := toEntity(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.uc.Create(c.Request.Context(), userID, a)
	switch {
	case errors.Is(err, usecase.ErrInvalidAnalysis):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("failed to save analysis", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save analysis"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(created))
}

// List はログイン中ユーザーの保存済み分析設定の一覧を返します。
//
// エンドポイント例:
// GET /analyses
func (h *SavedAnalysisHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	as, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list analyses", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list analyses"})
		return
	}

	out := make([]api.SavedAnalysisResponse, 0, len(as))
	for i := range as {
		out = append(out, toResponse(&as[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで分析設定を返します。
//
// エンドポイント例:
// GET /analyses/:id
func (h *SavedAnalysisHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.uc.Get(c.Request.Context(), userID, id)
	switch {
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "analysis not found"})
		return
	case err != nil:
		slog.Error("failed to load analysis", "user_id", userID, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load analysis"})
		return
	}

	c.JSON(http.StatusOK, toResponse(a))
}

// Delete はIDで分析設定を削除します。
//
// エンドポイント例:
// DELETE /analyses/:id
func (h *SavedAnalysisHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.uc.Delete(c.Request.Context(), userID, id)
	switch {
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "analysis not found"})
		return
	case err != nil:
		slog.Error("failed to delete analysis", "user_id", userID, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete analysis"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "deleted"})
}

// currentUserID はJWTミドルウェアが設定したユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	return id, true
}

// pathID は:idパスパラメータをパースします。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// toEntity はリクエストDTOをエンティティへ変換します。
func toEntity(req api.SavedAnalysisRequest) (*entity.SavedAnalysis, error) {
	a := &entity.SavedAnalysis{
		Name:         req.Name,
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		ChartType:    req.ChartType,
		ShowMA:       req.ShowMA,
		MAPeriods:    joinPeriods(req.MAPeriods),
		ShowRSI:      req.ShowRSI,
		RSIPeriod:    req.RSIPeriod,
		ShowMACD:     req.ShowMACD,
		MACDFast:     req.MACDFast,
		MACDSlow:     req.MACDSlow,
		MACDSignal:   req.MACDSignal,
		ShowBBands:   req.ShowBBands,
		BBandsPeriod: req.BBPeriod,
		BBandsStd:    req.BBStd,
	}

	const layout = "2006-01-02"
	if req.StartDate != "" {
		t, err := time.Parse(layout, req.StartDate)
		if err != nil {
			return nil, errors.New("invalid start_date, expected YYYY-MM-DD")
		}
		a.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse(layout, req.EndDate)
		if err != nil {
			return nil, errors.New("invalid end_date, expected YYYY-MM-DD")
		}
		a.EndDate = &t
	}
	return a, nil
}

// toResponse はエンティティをレスポンスDTOへ変換します。
func toResponse(a *entity.SavedAnalysis) api.SavedAnalysisResponse {
	const layout = "2006-01-02"
	out := api.SavedAnalysisResponse{
		ID:         a.ID,
		Name:       a.Name,
		Symbol:     a.Symbol,
		ChartType:  a.ChartType,
		ShowMA:     a.ShowMA,
		MAPeriods:  splitPeriods(a.MAPeriods),
		ShowRSI:    a.ShowRSI,
		RSIPeriod:  a.RSIPeriod,
		ShowMACD:   a.ShowMACD,
		MACDFast:   a.MACDFast,
		MACDSlow:   a.MACDSlow,
		MACDSignal: a.MACDSignal,
		ShowBBands: a.ShowBBands,
		BBPeriod:   a.BBandsPeriod,
		BBStd:      a.BBandsStd,
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.StartDate != nil {
		out.StartDate = a.StartDate.UTC().Format(layout)
	}
	if a.EndDate != nil {
		out.EndDate = a.EndDate.UTC().Format(layout)
	}
	return out
}

// joinPeriods は期間リストを元システムと同じカンマ区切り文字列で保存します。
func joinPeriods(periods []int) string {
	if len(periods) == 0 {
		return ""
	}
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// splitPeriods はカンマ区切り文字列を期間リストへ戻します。
func splitPeriods(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out = append(out, v)
		}
	}
	return out
}
