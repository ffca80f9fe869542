package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/assembler"
	"github.com/shouni/go-storybook-kit/pkg/cache"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/profile"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
	"github.com/shouni/go-storybook-kit/pkg/runner"
	"github.com/shouni/go-storybook-kit/pkg/scene"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
// APIキーが未設定の場合は nil を返し、パイプラインはシミュレーション段で動くのだ。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	if apiKey == "" {
		return nil, nil
	}

	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildProfiler はキャラクタープロファイラーを構築します。
// AIクライアントがあれば視覚解析を重ね、なければ決定論的プロファイルのみで動きます。
func BuildProfiler(appCtx *AppContext) (*profile.Profiler, error) {
	if !appCtx.HasAIClient() {
		return profile.NewProfiler(nil), nil
	}

	analyzer, err := profile.NewGeminiVisionAnalyzer(appCtx.aiClient, appCtx.Config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("視覚解析アナライザーの初期化に失敗したのだ: %w", err)
	}
	return profile.NewProfiler(analyzer), nil
}

// BuildOrchestrator は3段フォールバック連鎖のオーケストレーターを構築します。
func BuildOrchestrator(ctx context.Context, appCtx *AppContext) (*generator.Orchestrator, error) {
	imageDir := config.DefaultLocalImageDir
	if appCtx.Options.OutputDir != "" {
		imageDir = appCtx.Options.OutputDir + "/images"
	}

	realTier, err := generator.InitializeRealTier(
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.Writer,
		appCtx.httpClient,
		appCtx.Config.GeminiImageModel,
		imageDir,
		config.DefaultRateLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("実生成段の構築に失敗したのだ: %w", err)
	}

	if realTier == nil {
		slog.InfoContext(ctx, "実生成バックエンドが未構成のためシミュレーション段から開始します")
		return generator.NewDefaultOrchestrator(nil), nil
	}
	return generator.NewDefaultOrchestrator(realTier), nil
}

// BuildStoryRunner はストーリー組み立ての全工程を束ねた Runner を構築します。
func BuildStoryRunner(ctx context.Context, appCtx *AppContext, storyCache *cache.StoryCache) (*runner.StoryRunner, error) {
	profiler, err := BuildProfiler(appCtx)
	if err != nil {
		return nil, err
	}

	orchestrator, err := BuildOrchestrator(ctx, appCtx)
	if err != nil {
		return nil, err
	}

	asm := assembler.NewAssembler(
		profiler,
		scene.NewExtractor(),
		prompts.NewIllustrationPromptBuilder(appCtx.Config.IllustrationSuffix),
		orchestrator,
		assembler.WithParallelism(appCtx.Options.Parallelism),
	)

	pub, err := BuildStoryPublisher(appCtx)
	if err != nil {
		return nil, err
	}

	return runner.NewStoryRunner(asm, storyCache, pub), nil
}

// BuildWebExtractor は --story-url 指定時に使う本文抽出器を構築します。
func BuildWebExtractor(appCtx *AppContext) (*extract.Extractor, error) {
	extractor, err := extract.NewExtractor(appCtx.httpClient)
	if err != nil {
		return nil, fmt.Errorf("本文抽出器の初期化に失敗しました: %w", err)
	}
	return extractor, nil
}

// BuildStoryPublisher はコンテンツ保存と変換を行うパブリッシャーを構築します。
func BuildStoryPublisher(appCtx *AppContext) (*publisher.StoryPublisher, error) {
	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	appBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	return publisher.NewStoryPublisher(appCtx.Writer, md2htmlRunner), nil
}
