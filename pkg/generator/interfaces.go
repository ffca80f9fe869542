package generator

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// GenerationRequest は1ページ分の画像生成要求です。
type GenerationRequest struct {
	Prompt     string
	Profile    *domain.CharacterProfile
	Scene      domain.SceneDescriptor
	PageNumber int
}

// GenerationTier はフォールバック連鎖の1段を表します。
// TryGenerate がエラーか nil を返した場合、オーケストレーターは次の段へ進みます。
// エラーを連鎖の外へ伝播させるのはオーケストレーターの責務ではなく、そもそも行いません。
type GenerationTier interface {
	// Name は診断ログ用の段名を返します。
	Name() string
	// TryGenerate はこの段での生成を試みます。
	TryGenerate(ctx context.Context, req GenerationRequest) (*domain.GeneratedImageResult, error)
}
