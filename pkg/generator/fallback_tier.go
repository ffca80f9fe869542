package generator

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// DefaultFallbackAsset は連鎖の終端で返される固定アセットです。
const DefaultFallbackAsset = "https://picsum.photos/seed/storybook-default/800/600"

// FallbackTier は固定アセットを返す終端の第3段です。
// この段は構造上失敗し得ず、それが「ストーリー生成は必ず完了する」保証の土台です。
type FallbackTier struct{}

// NewFallbackTier は FallbackTier を生成します。
func NewFallbackTier() *FallbackTier {
	return &FallbackTier{}
}

// Name は段名を返します。
func (t *FallbackTier) Name() string {
	return string(domain.TierFallback)
}

// TryGenerate は常に固定アセットの結果を返します。
func (t *FallbackTier) TryGenerate(_ context.Context, _ GenerationRequest) (*domain.GeneratedImageResult, error) {
	return fallbackResult(), nil
}

func fallbackResult() *domain.GeneratedImageResult {
	return &domain.GeneratedImageResult{
		ImageLocator:     DefaultFallbackAsset,
		ConsistencyScore: FallbackTierScore,
		SourceTier:       domain.TierFallback,
	}
}
