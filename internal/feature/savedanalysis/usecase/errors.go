package usecase

import "errors"

var (
	// ErrAnalysisNotFound は分析設定が存在しない、または要求ユーザーの
	// 所有物でない場合に返されます。
	ErrAnalysisNotFound = errors.New("saved analysis not found")

	// ErrInvalidAnalysis は保存しようとした分析設定が検証を満たさない
	// 場合に返されます。
	ErrInvalidAnalysis = errors.New("invalid saved analysis")
)
