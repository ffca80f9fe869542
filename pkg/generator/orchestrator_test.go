package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
	"github.com/shouni/go-storybook-kit/pkg/scene"
)

func testRequest(prompt string, pageNumber int) GenerationRequest {
	return GenerationRequest{
		Prompt:     prompt,
		PageNumber: pageNumber,
		Profile:    &domain.CharacterProfile{CharacterID: "char-0a1b2c3d", ImageLocator: "ref.png"},
	}
}

func TestOrchestrator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("最初に成功した段の結果が採用される", func(t *testing.T) {
		real := &mockTier{name: "real", result: &domain.GeneratedImageResult{
			ImageLocator:     "output/images/story_page_1.png",
			ConsistencyScore: RealTierScore,
			SourceTier:       domain.TierReal,
		}}
		simulated := &mockTier{name: "simulated"}

		o := NewOrchestrator(real, simulated)
		res := o.Generate(ctx, testRequest("a fox reading a book", 1))

		require.NotNil(t, res)
		assert.Equal(t, domain.TierReal, res.SourceTier)
		assert.Equal(t, 0, simulated.called, "先行段が成功したら後続段は呼ばれない")
	})

	t.Run("失敗した段は次の段で吸収される", func(t *testing.T) {
		real := &mockTier{name: "real", err: fmt.Errorf("backend down")}

		o := NewOrchestrator(real, NewSimulatedTier(), NewFallbackTier())
		res := o.Generate(ctx, testRequest("a fox reading a book", 1))

		require.NotNil(t, res)
		assert.Equal(t, domain.TierSimulated, res.SourceTier)
		assert.Equal(t, 1, real.called)
	})

	t.Run("全段が失敗しても必ず固定アセットに劣化する", func(t *testing.T) {
		a := &mockTier{name: "a", err: fmt.Errorf("boom")}
		b := &mockTier{name: "b", err: fmt.Errorf("boom")}

		o := NewOrchestrator(a, b)
		res := o.Generate(ctx, testRequest("anything", 1))

		require.NotNil(t, res)
		assert.Equal(t, domain.TierFallback, res.SourceTier)
		assert.Equal(t, DefaultFallbackAsset, res.ImageLocator)
	})

	t.Run("段が空でも結果が返る", func(t *testing.T) {
		o := NewOrchestrator()
		res := o.Generate(ctx, testRequest("anything", 1))

		require.NotNil(t, res)
		assert.Equal(t, domain.TierFallback, res.SourceTier)
	})

	t.Run("空のプロンプトでもエラーにならない", func(t *testing.T) {
		o := NewDefaultOrchestrator(nil)
		res := o.Generate(ctx, testRequest("", 1))

		require.NotNil(t, res)
		assert.Contains(t, []domain.SourceTier{
			domain.TierReal, domain.TierSimulated, domain.TierFallback,
		}, res.SourceTier)
	})

	t.Run("結果には常にプロンプトと所要時間が付与される", func(t *testing.T) {
		o := NewDefaultOrchestrator(nil)
		res := o.Generate(ctx, testRequest("a fox reading a book", 1))

		assert.Equal(t, "a fox reading a book", res.Prompt)
		assert.GreaterOrEqual(t, res.GenerationTimeMs, int64(0))
	})

	t.Run("スコアは常に0から1の範囲に収まる", func(t *testing.T) {
		o := NewDefaultOrchestrator(nil)
		for _, prompt := range []string{"reading a book", "moving through the scene", "nothing matches here"} {
			res := o.Generate(ctx, testRequest(prompt, 1))
			assert.GreaterOrEqual(t, res.ConsistencyScore, 0.0)
			assert.LessOrEqual(t, res.ConsistencyScore, 1.0)
		}
	})
}

func TestSimulatedTier_TryGenerate(t *testing.T) {
	ctx := context.Background()
	tier := NewSimulatedTier()

	t.Run("カテゴリキーワードに一致した差し替え画像を返す", func(t *testing.T) {
		res, err := tier.TryGenerate(ctx, testRequest("a fox reading a book in the forest", 1))
		require.NoError(t, err)
		assert.Equal(t, domain.TierSimulated, res.SourceTier)
		assert.Equal(t, SimulatedTierScore, res.ConsistencyScore)
		assert.Contains(t, res.ImageLocator, "reading")
	})

	t.Run("アセットはページ番号の剰余で巡回する", func(t *testing.T) {
		// reading カテゴリはアセット3件。ページ 1..4 で4件目は1件目と同じになる。
		var locators []string
		for page := 1; page <= 4; page++ {
			res, err := tier.TryGenerate(ctx, testRequest("reading a book", page))
			require.NoError(t, err)
			locators = append(locators, res.ImageLocator)
		}

		assert.Equal(t, locators[0], locators[3], "N+1ページ目は1ページ目と同じアセットになる")
		assert.NotEqual(t, locators[0], locators[1], "連続するページでは別のアセットが選ばれる")
	})

	t.Run("どのカテゴリにも一致しない場合はエラーで次の段に委ねる", func(t *testing.T) {
		_, err := tier.TryGenerate(ctx, testRequest("an abstract swirl of colors", 1))
		assert.Error(t, err)
	})

	t.Run("完成済みプロンプトでも場面の動作に応じたカテゴリが選ばれる", func(t *testing.T) {
		pb := prompts.NewIllustrationPromptBuilder("")
		profile := &domain.CharacterProfile{CharacterID: "char-0a1b2c3d", ArtStyle: domain.ArtStyleCartoon}
		sceneDesc := domain.SceneDescriptor{
			Action:        "moving through the scene",
			Setting:       scene.DefaultSetting,
			LightingMood:  scene.DefaultLightingMood,
			EmotionalTone: scene.DefaultEmotionalTone,
			ArcPosition:   domain.ArcClimax,
		}
		prompt := pb.BuildIllustrationPrompt(profile, sceneDesc, 2)
		require.Contains(t, prompt, "storybook", "完成済みプロンプトは画風サフィックス由来の語を含む")

		res, err := tier.TryGenerate(ctx, GenerationRequest{
			Prompt:     prompt,
			Profile:    profile,
			Scene:      sceneDesc,
			PageNumber: 2,
		})
		require.NoError(t, err)
		assert.Contains(t, res.ImageLocator, "moving")
		assert.NotContains(t, res.ImageLocator, "reading", "サフィックス中の book 等で reading に吸い寄せられない")
	})

	t.Run("既定の動作では一致せず次の段に委ねられる", func(t *testing.T) {
		pb := prompts.NewIllustrationPromptBuilder("")
		profile := &domain.CharacterProfile{CharacterID: "char-0a1b2c3d", ArtStyle: domain.ArtStyleCartoon}
		sceneDesc := domain.SceneDescriptor{
			Action:        scene.DefaultAction,
			Setting:       scene.DefaultSetting,
			LightingMood:  scene.DefaultLightingMood,
			EmotionalTone: scene.DefaultEmotionalTone,
			ArcPosition:   domain.ArcBeginning,
		}

		_, err := tier.TryGenerate(ctx, GenerationRequest{
			Prompt:     pb.BuildIllustrationPrompt(profile, sceneDesc, 1),
			Profile:    profile,
			Scene:      sceneDesc,
			PageNumber: 1,
		})
		assert.Error(t, err)
	})
}

func TestFallbackTier_TryGenerate(t *testing.T) {
	tier := NewFallbackTier()

	res, err := tier.TryGenerate(context.Background(), testRequest("", 0))
	require.NoError(t, err)
	assert.Equal(t, domain.TierFallback, res.SourceTier)
	assert.Equal(t, FallbackTierScore, res.ConsistencyScore)
	assert.NotEmpty(t, res.ImageLocator)
}
