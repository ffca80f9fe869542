package cmd

import (
	"fmt"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// profileCmd は、参照画像からキャラクタープロファイルだけを生成して表示するのだ。
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "参照画像からキャラクタープロファイルを生成して表示するのだ。",
	Long: `絵本全体を組み立てる前に、参照画像がどんなプロファイルに解決されるかを
確認するためのコマンドなのだ。同じ画像パスなら結果は毎回同じになるのだよ。`,
	Example: "  ap-storybook-go profile -c ref.png",
	RunE:    profileCommand,
}

func profileCommand(cmd *cobra.Command, args []string) error {
	if opts.CharacterImage == "" {
		return fmt.Errorf("キャラクターの参照画像（--character-image）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	if err := pipeline.ExecuteProfile(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("プロファイル生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
