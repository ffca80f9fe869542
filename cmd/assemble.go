package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// assembleCmd は、ストーリー本文と参照画像から絵本を一括生成するのだ。
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "ストーリー本文からキャラクター一貫の絵本を組み立てるのだ。",
	Long: `参照画像からキャラクタープロファイルを作り、本文をページに分割して
ページごとに場面抽出・プロンプト合成・画像生成を行い、1冊の絵本として出力するのだ。
画像生成はAPIキーがなくてもフォールバック連鎖で必ず完了するのだよ。`,
	Example: "  ap-storybook-go assemble -c ref.png -f story.md -p 5 -l es -o output",
	RunE:    assembleCommand,
}

func assembleCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.StoryURL == "" && opts.StoryFile == "" {
		if !isStdin() {
			return fmt.Errorf("ソース（--story-url または --story-file）を指定してほしいのだ")
		}
		// パイプ入力は --story-file - と同じ扱いにするのだ
		opts.StoryFile = "-"
	}
	if opts.CharacterImage == "" {
		return fmt.Errorf("キャラクターの参照画像（--character-image）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("絵本組み立てパイプラインを起動するのだ！",
		"pages", opts.PageCount,
		"locale", opts.TranslationLocale,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteAssemble(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
