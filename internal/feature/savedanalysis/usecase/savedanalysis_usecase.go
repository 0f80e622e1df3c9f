// Package usecase は保存済み分析設定のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"stock_analysis/internal/feature/savedanalysis/domain/entity"
)

// SavedAnalysisRepository は保存済み分析設定の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SavedAnalysisRepository interface {
	// Create は新しい分析設定を永続化します。
	Create(ctx context.Context, a *entity.SavedAnalysis) error

	// FindByID はIDで分析設定を取得します。
	// 存在しない場合はErrAnalysisNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.SavedAnalysis, error)

	// ListByUser は指定ユーザーの分析設定を更新日時の降順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.SavedAnalysis, error)

	// Delete はIDで分析設定を削除します。
	Delete(ctx context.Context, id uint) error
}

// savedAnalysisUsecase は保存済み分析設定のユースケースを定義します。
type savedAnalysisUsecase struct {
	repo SavedAnalysisRepository
}

// NewSavedAnalysisUsecase はsavedAnalysisUsecaseの新しいインスタンスを生成します。
func NewSavedAnalysisUsecase(repo SavedAnalysisRepository) *savedAnalysisUsecase {
	return &savedAnalysisUsecase{repo: repo}
}

// Create は分析設定を検証のうえ指定ユーザーの設定として保存します。
func (u *savedAnalysisUsecase) Create(ctx context.Context, userID uint, a *entity.SavedAnalysis) (*entity.SavedAnalysis, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAnalysis)
	}
	if a.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidAnalysis)
	}
	if a.ShowRSI && a.RSIPeriod <= 0 {
		return nil, fmt.Errorf("%w: RSI period must be positive", ErrInvalidAnalysis)
	}
	if a.ShowMACD && (a.MACDFast <= 0 || a.MACDSlow <= 0 || a.MACDSignal <= 0) {
		return nil, fmt.Errorf("%w: MACD periods must be positive", ErrInvalidAnalysis)
	}
	if a.ShowBBands && (a.BBandsPeriod <= 0 || a.BBandsStd <= 0) {
		return nil, fmt.Errorf("%w: Bollinger parameters must be positive", ErrInvalidAnalysis)
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidAnalysis)
	}

	a.ID = 0
	a.UserID = userID
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List は指定ユーザーの保存済み分析設定をすべて返します。
func (u *savedAnalysisUsecase) List(ctx context.Context, userID uint) ([]entity.SavedAnalysis, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Get はIDで分析設定を取得します。他ユーザーの設定は
// ErrAnalysisNotFoundとして扱います（IDの存在を漏らさないため）。
func (u *savedAnalysisUsecase) Get(ctx context.Context, userID, id uint) (*entity.SavedAnalysis, error) {
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAnalysisNotFound
	}
	return a, nil
}

// Delete はIDで分析設定を削除します。所有権の検証を先に行います。
func (u *savedAnalysisUsecase) Delete(ctx context.Context, userID, id uint) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
