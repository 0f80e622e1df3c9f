// Package adapters はsavedanalysisフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stock_analysis/internal/feature/savedanalysis/domain/entity"
	"stock_analysis/internal/feature/savedanalysis/usecase"
)

// savedAnalysisGorm はSavedAnalysisRepositoryインターフェースのgorm実装です。
type savedAnalysisGorm struct {
	db *gorm.DB
}

var _ usecase.SavedAnalysisRepository = (*savedAnalysisGorm)(nil)

// NewSavedAnalysisRepository は指定されたDB接続でリポジトリの新しいインスタンスを生成します。
func NewSavedAnalysisRepository(db *gorm.DB) *savedAnalysisGorm {
	return &savedAnalysisGorm{db: db}
}

// Create は新しい分析設定を保存します。
func (r *savedAnalysisGorm) Create(ctx context.Context, a *entity.SavedAnalysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByID はIDで分析設定を検索します。
func (r *savedAnalysisGorm) FindByID(ctx context.Context, id uint) (*entity.SavedAnalysis, error) {
	var a entity.SavedAnalysis
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", usecase.ErrAnalysisNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser は指定ユーザーの分析設定を更新日時の降順で返します。
func (r *savedAnalysisGorm) ListByUser(ctx context.Context, userID uint) ([]entity.SavedAnalysis, error) {
	var as []entity.SavedAnalysis
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}

// Delete はIDで分析設定を削除します。
func (r *savedAnalysisGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.SavedAnalysis{}, id).Error
}
