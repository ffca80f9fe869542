package generator

import (
	"bytes"
	"context"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"

	"github.com/shouni/go-storybook-kit/pkg/asset"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
)

// PageAspectRatio は絵本ページ画像の固定アスペクト比です。
const PageAspectRatio = "4:3"

// RealTier は外部の画像生成バックエンドを呼び出す第1段です。
// 生成された画像は安定ストレージへ保存され、その保存先がロケーターになります。
type RealTier struct {
	imgGen   imagegen.ImageGenerator
	writer   remoteio.OutputWriter
	limiter  *rate.Limiter
	imageDir string
}

// NewRealTier は RealTier を初期化します。バックエンドが構成できない環境では
// nil を返し、オーケストレーターは simulated 段から連鎖を始めます。
func NewRealTier(imgGen imagegen.ImageGenerator, writer remoteio.OutputWriter, limiter *rate.Limiter, imageDir string) *RealTier {
	if imgGen == nil || writer == nil {
		return nil
	}
	return &RealTier{
		imgGen:   imgGen,
		writer:   writer,
		limiter:  limiter,
		imageDir: imageDir,
	}
}

// Name は段名を返します。
func (t *RealTier) Name() string {
	return string(domain.TierReal)
}

// TryGenerate はバックエンドで画像を生成し、保存先のロケーターと固定スコアを返します。
// レート制限・生成・保存のいずれの失敗もエラーとして返し、次の段に委ねます。
func (t *RealTier) TryGenerate(ctx context.Context, req GenerationRequest) (*domain.GeneratedImageResult, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("リミッター待機中にエラーが発生しました: %w", err)
		}
	}

	var seedPtr *int64
	if req.Profile != nil {
		s := domain.SeedFromCharacterID(req.Profile.CharacterID)
		seedPtr = &s
	}

	var referenceURL string
	if req.Profile != nil {
		referenceURL = req.Profile.ImageLocator
	}

	resp, err := t.imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: prompts.DefaultNegativePrompt,
		Seed:           seedPtr,
		ReferenceURL:   referenceURL,
		AspectRatio:    PageAspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("実生成バックエンドの呼び出しに失敗しました: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("実生成バックエンドが空の画像を返しました")
	}

	// 生成結果を安定ストレージへ退避し、そのパスをロケーターとして公開します。
	basePath, err := asset.ResolveOutputPath(t.imageDir, asset.DefaultPageFileName)
	if err != nil {
		return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	pagePath, err := asset.GenerateIndexedPath(basePath, req.PageNumber)
	if err != nil {
		return nil, fmt.Errorf("ページ %d の出力パス生成に失敗しました: %w", req.PageNumber, err)
	}
	if err := t.writer.Write(ctx, pagePath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		return nil, fmt.Errorf("ページ画像の保存に失敗しました (path: %s): %w", pagePath, err)
	}

	return &domain.GeneratedImageResult{
		ImageLocator:     pagePath,
		ConsistencyScore: RealTierScore,
		SourceTier:       domain.TierReal,
	}, nil
}
