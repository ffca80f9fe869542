// Package runner はストーリー組み立てから公開までの工程を束ねます。
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storybook-kit/pkg/assembler"
	"github.com/shouni/go-storybook-kit/pkg/cache"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
)

// StoryRunner は組み立て・キャッシュ登録・成果物出力を一括して実行します。
type StoryRunner struct {
	assembler  *assembler.Assembler
	storyCache *cache.StoryCache
	publisher  *publisher.StoryPublisher
}

// NewStoryRunner は StoryRunner を初期化します。publisher は省略可能です。
func NewStoryRunner(asm *assembler.Assembler, storyCache *cache.StoryCache, pub *publisher.StoryPublisher) *StoryRunner {
	return &StoryRunner{
		assembler:  asm,
		storyCache: storyCache,
		publisher:  pub,
	}
}

// Run はストーリーを組み立て、両層のキャッシュへ登録し、成果物を書き出します。
// 戻り値のストーリーはキャッシュ登録済みで、StoryID で再取得できます。
func (r *StoryRunner) Run(ctx context.Context, req assembler.Request, outputDir string) (*domain.Story, publisher.PublishResult, error) {
	var pubResult publisher.PublishResult

	story, err := r.assembler.Assemble(ctx, req)
	if err != nil {
		return nil, pubResult, fmt.Errorf("ストーリーの組み立てに失敗しました: %w", err)
	}

	if r.storyCache != nil {
		r.storyCache.Put(story)
		r.storyCache.PutLookup(story)
		slog.InfoContext(ctx, "ストーリーをキャッシュへ登録しました", "story_id", story.StoryID)
	}

	if r.publisher != nil && outputDir != "" {
		pubResult, err = r.publisher.Publish(ctx, story, publisher.Options{OutputDir: outputDir})
		if err != nil {
			return story, pubResult, fmt.Errorf("成果物の出力に失敗しました: %w", err)
		}
		slog.InfoContext(ctx, "成果物を書き出しました",
			"story_json", pubResult.StoryJSONPath,
			"markdown", pubResult.MarkdownPath,
		)
	}

	return story, pubResult, nil
}

// Lookup はキャッシュからストーリーを取得します。不在は ok=false で表現します。
func (r *StoryRunner) Lookup(storyID string) (*domain.Story, bool) {
	if r.storyCache == nil {
		return nil, false
	}
	return r.storyCache.Get(storyID)
}
