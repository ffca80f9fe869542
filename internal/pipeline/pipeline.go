package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-storybook-kit/internal/builder"
	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/assembler"
	"github.com/shouni/go-storybook-kit/pkg/asset"
	"github.com/shouni/go-storybook-kit/pkg/cache"
	"github.com/shouni/go-storybook-kit/pkg/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteAssemble はストーリー本文と参照画像から絵本を組み立てる全工程を実行するのだ。
func ExecuteAssemble(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	storyText, err := loadStoryText(ctx, appCtx)
	if err != nil {
		return err
	}

	storyCache := cache.NewStoryCache(cache.WithTTL(config.DefaultImmediateCacheTTL))
	storyRunner, err := builder.BuildStoryRunner(ctx, appCtx, storyCache)
	if err != nil {
		return fmt.Errorf("StoryRunnerの構築に失敗したのだ: %w", err)
	}

	opts := appCtx.Options
	req := assembler.Request{
		CharacterImageLocator: opts.CharacterImage,
		StoryText:             storyText,
		Title:                 opts.Title,
		PageCount:             opts.PageCount,
		Settings: domain.StorySettings{
			WordsToInclude:    opts.WordsToInclude,
			TranslationLocale: opts.TranslationLocale,
			GuidanceText:      opts.GuidanceText,
			StyleImageLocator: opts.StyleImage,
		},
	}

	story, pubResult, err := storyRunner.Run(ctx, req, opts.OutputDir)
	if err != nil {
		return err
	}

	// キャッシュ経由の読み戻しで二層構成が機能していることを確認します。
	if _, ok := storyRunner.Lookup(story.StoryID); !ok {
		return fmt.Errorf("組み立て直後のストーリーがキャッシュから取得できません (story_id: %s)", story.StoryID)
	}

	slog.InfoContext(ctx, "絵本の組み立てが完了したのだ！",
		"story_id", story.StoryID,
		"title", story.Title,
		"pages", len(story.Pages),
		"story_json", pubResult.StoryJSONPath,
		"html", pubResult.HTMLPath,
	)
	return nil
}

// ExecuteProfile は参照画像からキャラクタープロファイルだけを生成して表示するのだ。
// 同じロケーターなら何度実行しても同じプロファイルになることの確認に使えるのだ。
func ExecuteProfile(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	profiler, err := builder.BuildProfiler(appCtx)
	if err != nil {
		return err
	}

	prof, err := profiler.Profile(ctx, appCtx.Options.CharacterImage)
	if err != nil {
		return fmt.Errorf("プロファイルの生成に失敗したのだ: %w", err)
	}

	payload, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Errorf("プロファイルのJSON変換に失敗しました: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

// ExecuteRead は出力済みの story.json を読み戻してページ概要を表示するのだ。
func ExecuteRead(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	jsonPath, err := asset.ResolveOutputPath(appCtx.Options.OutputDir, asset.DefaultStoryJSONName)
	if err != nil {
		return fmt.Errorf("story.jsonのパス解決に失敗しました: %w", err)
	}

	rc, err := appCtx.Reader.Open(ctx, jsonPath)
	if err != nil {
		return fmt.Errorf("story.json '%s' の読み込みに失敗しました: %w", jsonPath, err)
	}
	defer rc.Close()

	var story domain.Story
	if err := json.NewDecoder(rc).Decode(&story); err != nil {
		return fmt.Errorf("story.json '%s' のデコードに失敗しました: %w", jsonPath, err)
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n", story.Title, story.StoryID)
	for _, page := range story.Pages {
		fmt.Fprintf(os.Stdout, "  page %d [%s] %s\n",
			page.PageNumber, page.GeneratedImage.SourceTier, page.GeneratedImage.ImageLocator)
	}
	for _, target := range story.Targets {
		fmt.Fprintf(os.Stdout, "  vocab %s (%d)\n", target.Lemma, target.OccurrenceCount)
	}
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// AIクライアントはAPIキー未設定でも nil のまま続行し、シミュレーション段が引き受けるのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// loadStoryText は --story-url または --story-file からストーリー本文を読み込むのだ。
// ファイル名「-」は標準入力を意味するのだ。
func loadStoryText(ctx context.Context, appCtx *builder.AppContext) (string, error) {
	opts := appCtx.Options

	if opts.StoryURL != "" {
		extractor, err := builder.BuildWebExtractor(appCtx)
		if err != nil {
			return "", err
		}
		text, _, err := extractor.FetchAndExtractText(ctx, opts.StoryURL)
		if err != nil {
			return "", fmt.Errorf("URLからの本文抽出に失敗したのだ: %w", err)
		}
		return text, nil
	}

	if opts.StoryFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力からの本文読み込みに失敗したのだ: %w", err)
		}
		return string(data), nil
	}

	if opts.StoryFile != "" {
		rc, err := appCtx.Reader.Open(ctx, opts.StoryFile)
		if err != nil {
			return "", fmt.Errorf("ストーリーファイル '%s' の読み込みに失敗しました: %w", opts.StoryFile, err)
		}
		defer rc.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, rc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	return "", fmt.Errorf("--story-file または --story-url のいずれかを指定してください")
}
