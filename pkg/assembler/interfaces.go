package assembler

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
)

// CharacterProfiler は参照画像ロケーターからキャラクタープロファイルを解決します。
type CharacterProfiler interface {
	Profile(ctx context.Context, imageLocator string) (*domain.CharacterProfile, error)
}

// SceneExtractor は1ページ分の本文とページ位置から場面記述を抽出します。
type SceneExtractor interface {
	Extract(pageText string, pageIndex, totalPages int) domain.SceneDescriptor
}

// PromptBuilder はプロファイルと場面記述から生成指示文を合成します。
type PromptBuilder interface {
	BuildIllustrationPrompt(profile *domain.CharacterProfile, scene domain.SceneDescriptor, pageNumber int) string
}

// ImageOrchestrator はページ画像の生成を実行します。
// 連鎖の契約上、この操作は決して失敗しません。
type ImageOrchestrator interface {
	Generate(ctx context.Context, req generator.GenerationRequest) *domain.GeneratedImageResult
}
