// Package publisher は組み立て済みストーリーの成果物出力を担います。
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-storybook-kit/pkg/asset"
	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理で生成されたファイルの情報を保持します。
type PublishResult struct {
	StoryJSONPath string // 生成された story.json のパス
	MarkdownPath  string // 生成された storybook.md のパス
	HTMLPath      string // 生成された HTML のパス（ランナー未設定なら空）
}

// StoryPublisher は成果物の永続化とフォーマット変換を担います。
// 出力先はローカルディレクトリでも GCS でも writer の実装次第です。
type StoryPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewStoryPublisher は StoryPublisher を生成します。htmlRunner は省略可能です。
func NewStoryPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *StoryPublisher {
	return &StoryPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は story.json、Markdown、HTML を一括して書き出します。
func (p *StoryPublisher) Publish(ctx context.Context, story *domain.Story, opts Options) (PublishResult, error) {
	result := PublishResult{}
	if story == nil {
		return result, fmt.Errorf("パブリッシュ対象のストーリーが空です")
	}

	jsonPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryJSONName)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	payload, err := json.MarshalIndent(story, "", "  ")
	if err != nil {
		return result, fmt.Errorf("ストーリーのJSON変換に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, strings.NewReader(string(payload)), "application/json; charset=utf-8"); err != nil {
		return result, fmt.Errorf("story.jsonの書き込みに失敗しました: %w", err)
	}
	result.StoryJSONPath = jsonPath

	markdownPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStorybookName)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	content := BuildStorybookMarkdown(story)
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	if p.htmlRunner != nil {
		slog.InfoContext(ctx, "ストーリーブックをHTMLへ変換します", "title", story.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, story.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// BuildStorybookMarkdown はストーリー全体を1つの Markdown 文書に組み立てます。
// ページ本文の **強調** マーカーはそのまま残し、ビューア側の強調表示に委ねます。
func BuildStorybookMarkdown(story *domain.Story) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", story.Title))

	for _, page := range story.Pages {
		sb.WriteString(fmt.Sprintf("## Page %d\n\n", page.PageNumber))
		sb.WriteString(fmt.Sprintf("![Page %d](%s)\n\n", page.PageNumber, page.GeneratedImage.ImageLocator))
		sb.WriteString(page.Text)
		sb.WriteString("\n\n")
	}

	if len(story.Targets) > 0 {
		sb.WriteString("## Vocabulary\n\n")
		for _, target := range story.Targets {
			sb.WriteString(fmt.Sprintf("- **%s** (%d)\n", target.Lemma, target.OccurrenceCount))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
