package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// mockAnalyzer は VisionAnalyzer のテスト用実装です。
type mockAnalyzer struct {
	analysis *VisionAnalysis
	err      error
	called   int
}

func (m *mockAnalyzer) AnalyzeCharacter(ctx context.Context, imageLocator string) (*VisionAnalysis, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func TestProfiler_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("同じロケーターからは同一のIDと埋め込みが得られる", func(t *testing.T) {
		p := NewProfiler(nil)

		first, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)
		second, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		assert.Equal(t, first.CharacterID, second.CharacterID)
		assert.Equal(t, first.VisualEmbedding, second.VisualEmbedding)
		assert.Len(t, first.VisualEmbedding, domain.EmbeddingSize)
	})

	t.Run("異なるロケーターは異なるIDになる", func(t *testing.T) {
		p := NewProfiler(nil)

		a, err := p.Profile(ctx, "fox.png")
		require.NoError(t, err)
		b, err := p.Profile(ctx, "rabbit.png")
		require.NoError(t, err)

		assert.NotEqual(t, a.CharacterID, b.CharacterID)
	})

	t.Run("空のロケーターは前提条件違反として拒否される", func(t *testing.T) {
		p := NewProfiler(nil)

		_, err := p.Profile(ctx, "")
		assert.Error(t, err)
		_, err = p.Profile(ctx, "   ")
		assert.Error(t, err)
	})

	t.Run("プロファイルの内容が仕様の範囲に収まっている", func(t *testing.T) {
		p := NewProfiler(nil)

		prof, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		assert.NotEmpty(t, prof.FacialFeatures.EyeColor)
		assert.NotEmpty(t, prof.FacialFeatures.HairColor)
		assert.Contains(t, []domain.ArtStyle{
			domain.ArtStyleRealistic, domain.ArtStyleAnime,
			domain.ArtStyleCartoon, domain.ArtStyleManga,
		}, prof.ArtStyle)
		assert.GreaterOrEqual(t, len(prof.ColorPalette), 3)

		for _, score := range []float64{
			prof.Personality.Confidence,
			prof.Personality.Friendliness,
			prof.Personality.Intelligence,
			prof.Personality.Energy,
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("解析結果は外見のみを上書きし、IDと埋め込みは維持される", func(t *testing.T) {
		baseline, err := NewProfiler(nil).Profile(ctx, "ref.png")
		require.NoError(t, err)

		analyzer := &mockAnalyzer{analysis: &VisionAnalysis{
			Description:    "a small fox with a red scarf",
			FacialFeatures: domain.FacialFeatures{EyeColor: "golden"},
			ArtStyle:       domain.ArtStyleAnime,
		}}
		p := NewProfiler(analyzer)

		prof, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		assert.Equal(t, baseline.CharacterID, prof.CharacterID)
		assert.Equal(t, baseline.VisualEmbedding, prof.VisualEmbedding)
		assert.Equal(t, "golden", prof.FacialFeatures.EyeColor)
		assert.Equal(t, domain.ArtStyleAnime, prof.ArtStyle)
		assert.Equal(t, "a small fox with a red scarf", prof.Description)
		// 解析が埋めなかった属性は決定論的な既定値のまま
		assert.Equal(t, baseline.FacialFeatures.HairColor, prof.FacialFeatures.HairColor)
	})

	t.Run("解析失敗はエラーにならず決定論的プロファイルに劣化する", func(t *testing.T) {
		analyzer := &mockAnalyzer{err: fmt.Errorf("backend unavailable")}
		p := NewProfiler(analyzer)

		prof, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		baseline, _ := NewProfiler(nil).Profile(ctx, "ref.png")
		assert.Equal(t, baseline.CharacterID, prof.CharacterID)
		assert.Equal(t, baseline.FacialFeatures, prof.FacialFeatures)
	})

	t.Run("プロファイルはロケーターごとに一度だけ構築される", func(t *testing.T) {
		analyzer := &mockAnalyzer{analysis: &VisionAnalysis{Description: "x"}}
		p := NewProfiler(analyzer)

		_, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)
		_, err = p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		assert.Equal(t, 1, analyzer.called)
	})

	t.Run("不正な画風は無視される", func(t *testing.T) {
		analyzer := &mockAnalyzer{analysis: &VisionAnalysis{ArtStyle: "oil-painting"}}
		p := NewProfiler(analyzer)

		prof, err := p.Profile(ctx, "ref.png")
		require.NoError(t, err)

		baseline, _ := NewProfiler(nil).Profile(ctx, "ref.png")
		assert.Equal(t, baseline.ArtStyle, prof.ArtStyle)
	})
}

func TestParseAnalysis(t *testing.T) {
	t.Run("コードブロックで囲まれたJSONを取り出せる", func(t *testing.T) {
		raw := "Here you go:\n```json\n{\"description\": \"a fox\", \"art_style\": \"anime\"}\n```"
		analysis, err := parseAnalysis(raw)
		require.NoError(t, err)
		assert.Equal(t, "a fox", analysis.Description)
	})

	t.Run("裸のJSONオブジェクトにも対応する", func(t *testing.T) {
		raw := "result: {\"description\": \"a rabbit\"} (end)"
		analysis, err := parseAnalysis(raw)
		require.NoError(t, err)
		assert.Equal(t, "a rabbit", analysis.Description)
	})

	t.Run("JSONが含まれない応答はエラーになる", func(t *testing.T) {
		_, err := parseAnalysis("sorry, I cannot do that")
		assert.Error(t, err)
	})
}
