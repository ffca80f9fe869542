// Package assembler はストーリー本文からページ画像付きの絵本を組み立てます。
package assembler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/scene"
)

var (
	// ErrEmptyStoryText はストーリー本文が空のときに返されます。
	ErrEmptyStoryText = errors.New("ストーリー本文が空です")
	// ErrInvalidPageCount は要求ページ数が1未満のときに返されます。
	ErrInvalidPageCount = errors.New("要求ページ数は1以上である必要があります")
)

// Request はストーリー組み立ての入力一式です。
type Request struct {
	CharacterImageLocator string
	StoryText             string
	Title                 string
	PageCount             int
	Settings              domain.StorySettings
}

// Assembler はプロファイル・場面抽出・プロンプト合成・画像生成を
// ページ単位に束ね、完成した Story を構築します。
type Assembler struct {
	profiler      CharacterProfiler
	extractor     SceneExtractor
	promptBuilder PromptBuilder
	orchestrator  ImageOrchestrator
	parallelism   int
}

// Option は Assembler の挙動を調整します。
type Option func(*Assembler)

// WithParallelism はページ画像生成の並列数を設定します。
// 1以下は既定の逐次処理のままです。
func WithParallelism(n int) Option {
	return func(a *Assembler) {
		a.parallelism = n
	}
}

// NewAssembler は Assembler を初期化します。
func NewAssembler(profiler CharacterProfiler, extractor SceneExtractor, promptBuilder PromptBuilder, orchestrator ImageOrchestrator, opts ...Option) *Assembler {
	a := &Assembler{
		profiler:      profiler,
		extractor:     extractor,
		promptBuilder: promptBuilder,
		orchestrator:  orchestrator,
		parallelism:   1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble はストーリー全体を組み立てます。
// 個々のページの画像生成はフォールバック連鎖の契約により失敗し得ないため、
// 入力検証とプロファイル解決を通過すれば組み立ては必ず完了します。
func (a *Assembler) Assemble(ctx context.Context, req Request) (*domain.Story, error) {
	if strings.TrimSpace(req.StoryText) == "" {
		return nil, ErrEmptyStoryText
	}
	if req.PageCount < 1 {
		return nil, ErrInvalidPageCount
	}

	profile, err := a.profiler.Profile(ctx, req.CharacterImageLocator)
	if err != nil {
		return nil, fmt.Errorf("キャラクタープロファイルの解決に失敗しました: %w", err)
	}

	segments := SegmentByParagraph(req.StoryText, req.PageCount)
	if len(segments) == 0 {
		return nil, ErrEmptyStoryText
	}

	slog.InfoContext(ctx, "ストーリーの組み立てを開始します",
		"character_id", profile.CharacterID,
		"requested_pages", req.PageCount,
		"actual_pages", len(segments),
	)

	var pages []domain.StoryPage
	if a.parallelism > 1 {
		pages = a.buildPagesParallel(ctx, profile, segments)
	} else {
		pages = a.buildPagesSequential(ctx, profile, segments)
	}
	domain.Pages(pages).SortByPageNumber()

	targets := ExtractTargets(pages, req.Settings.WordsToInclude)
	InjectTranslations(pages, targets, req.Settings.TranslationLocale)

	story := &domain.Story{
		StoryID:  domain.NewStoryID(req.StoryText),
		Title:    a.resolveTitle(req),
		Pages:    pages,
		Targets:  targets,
		Settings: req.Settings,
	}

	slog.InfoContext(ctx, "ストーリーの組み立てが完了しました",
		"story_id", story.StoryID,
		"pages", len(story.Pages),
		"targets", len(story.Targets),
	)
	return story, nil
}

func (a *Assembler) buildPagesSequential(ctx context.Context, profile *domain.CharacterProfile, segments []string) []domain.StoryPage {
	pages := make([]domain.StoryPage, len(segments))
	for i, segment := range segments {
		pages[i] = a.buildPage(ctx, profile, segment, i, len(segments))
	}
	return pages
}

// buildPagesParallel はページ生成をファンアウトします。
// 結果はページ番号に対応する添字へ直接書き込むため、完了順に依存しません。
func (a *Assembler) buildPagesParallel(ctx context.Context, profile *domain.CharacterProfile, segments []string) []domain.StoryPage {
	pages := make([]domain.StoryPage, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i, segment := range segments {
		g.Go(func() error {
			pages[i] = a.buildPage(gctx, profile, segment, i, len(segments))
			return nil
		})
	}
	// ワーカーはエラーを返さないため、ここは合流のみです。
	_ = g.Wait()

	return pages
}

func (a *Assembler) buildPage(ctx context.Context, profile *domain.CharacterProfile, segment string, pageIndex, totalPages int) domain.StoryPage {
	pageNumber := pageIndex + 1

	sceneDesc := a.extractor.Extract(segment, pageIndex, totalPages)
	prompt := a.promptBuilder.BuildIllustrationPrompt(profile, sceneDesc, pageNumber)
	result := a.orchestrator.Generate(ctx, generator.GenerationRequest{
		Prompt:     prompt,
		Profile:    profile,
		Scene:      sceneDesc,
		PageNumber: pageNumber,
	})

	return domain.StoryPage{
		PageNumber:     pageNumber,
		Text:           segment,
		GeneratedImage: *result,
	}
}

// resolveTitle は指定がなければ本文の冒頭からタイトルを導出します。
func (a *Assembler) resolveTitle(req Request) string {
	if title := strings.TrimSpace(req.Title); title != "" {
		return title
	}

	paragraphs := splitParagraphs(req.StoryText)
	if len(paragraphs) == 0 {
		return "Untitled Story"
	}

	const maxTitleWords = 8
	words := strings.Fields(scene.StripEmphasis(paragraphs[0]))
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	return strings.TrimRight(strings.Join(words, " "), ".,!?;:")
}
