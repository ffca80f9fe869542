package profile

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// VisionAnalysis は視覚バックエンドが返す構造化された観察結果です。
// 決定論的プロファイルの外見属性・画風・説明文のみを上書きします。
type VisionAnalysis struct {
	Description    string                `json:"description"`
	FacialFeatures domain.FacialFeatures `json:"facial_features"`
	ArtStyle       domain.ArtStyle       `json:"art_style"`
}

// VisionAnalyzer は参照画像を解析する外部バックエンドです。
type VisionAnalyzer interface {
	// AnalyzeCharacter は画像ロケーターが指すキャラクターの外見を解析します。
	AnalyzeCharacter(ctx context.Context, imageLocator string) (*VisionAnalysis, error)
}
