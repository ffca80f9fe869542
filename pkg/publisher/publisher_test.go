package publisher

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// captureWriter は書き込み内容をメモリに保持するテスト用の writer です。
type captureWriter struct {
	written map[string]string
	err     error
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{written: make(map[string]string)}
}

func (w *captureWriter) Write(_ context.Context, path string, r io.Reader, _ string) error {
	if w.err != nil {
		return w.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	w.written[path] = string(data)
	return nil
}

func sampleStory() *domain.Story {
	return &domain.Story{
		StoryID: "story-1756200000000-0a1b2c3d",
		Title:   "Mila and the Map",
		Pages: []domain.StoryPage{
			{
				PageNumber: 1,
				Text:       "Mila opened her favorite **book**.",
				GeneratedImage: domain.GeneratedImageResult{
					ImageLocator:     "https://picsum.photos/seed/storybook-reading-1/800/600",
					ConsistencyScore: 0.85,
					SourceTier:       domain.TierSimulated,
				},
			},
			{
				PageNumber: 2,
				Text:       "She went on a long **journey**.",
				GeneratedImage: domain.GeneratedImageResult{
					ImageLocator:     "https://picsum.photos/seed/storybook-moving-2/800/600",
					ConsistencyScore: 0.85,
					SourceTier:       domain.TierSimulated,
				},
			},
		},
		Targets: []domain.VocabularyTarget{
			{Lemma: "book", OccurrenceCount: 1},
			{Lemma: "journey", OccurrenceCount: 1},
		},
	}
}

func TestStoryPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("story.jsonとMarkdownが書き出される", func(t *testing.T) {
		writer := newCaptureWriter()
		pub := NewStoryPublisher(writer, nil)

		result, err := pub.Publish(ctx, sampleStory(), Options{OutputDir: "output"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.StoryJSONPath)
		assert.NotEmpty(t, result.MarkdownPath)
		assert.Empty(t, result.HTMLPath, "ランナー未設定ならHTMLは生成されない")
		assert.Len(t, writer.written, 2)
	})

	t.Run("story.jsonは往復可能なストーリーを含む", func(t *testing.T) {
		writer := newCaptureWriter()
		pub := NewStoryPublisher(writer, nil)
		story := sampleStory()

		result, err := pub.Publish(ctx, story, Options{OutputDir: "output"})
		require.NoError(t, err)

		var decoded domain.Story
		require.NoError(t, json.Unmarshal([]byte(writer.written[result.StoryJSONPath]), &decoded))
		assert.Equal(t, story.StoryID, decoded.StoryID)
		assert.Len(t, decoded.Pages, 2)
	})

	t.Run("Markdownにはページと語彙が含まれる", func(t *testing.T) {
		writer := newCaptureWriter()
		pub := NewStoryPublisher(writer, nil)

		result, err := pub.Publish(ctx, sampleStory(), Options{OutputDir: "output"})
		require.NoError(t, err)

		content := writer.written[result.MarkdownPath]
		assert.True(t, strings.HasPrefix(content, "# Mila and the Map"))
		assert.Contains(t, content, "## Page 1")
		assert.Contains(t, content, "## Page 2")
		assert.Contains(t, content, "storybook-reading-1")
		assert.Contains(t, content, "## Vocabulary")
		assert.Contains(t, content, "**journey**")
	})

	t.Run("ストーリーが空ならエラーを返す", func(t *testing.T) {
		pub := NewStoryPublisher(newCaptureWriter(), nil)

		_, err := pub.Publish(ctx, nil, Options{OutputDir: "output"})
		assert.Error(t, err)
	})
}

func TestBuildStorybookMarkdown(t *testing.T) {
	t.Run("強調マーカーは本文にそのまま残る", func(t *testing.T) {
		content := BuildStorybookMarkdown(sampleStory())
		assert.Contains(t, content, "**book**")
	})

	t.Run("語彙がなければVocabulary節は出力されない", func(t *testing.T) {
		story := sampleStory()
		story.Targets = nil

		content := BuildStorybookMarkdown(story)
		assert.NotContains(t, content, "## Vocabulary")
	})
}
