package cmd

import (
	"fmt"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// readCmd は、出力済みの story.json を読み戻してページ概要を表示するのだ。
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "出力済みの絵本データを読み戻して概要を表示するのだ。",
	Long: `assemble が書き出した story.json を読み込み、各ページの画像ロケーターと
生成元の段、語彙ターゲットの一覧を表示するのだ。`,
	Example: "  ap-storybook-go read -o output",
	RunE:    readCommand,
}

func readCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	if err := pipeline.ExecuteRead(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("絵本データの読み戻しに失敗したのだ: %w", err)
	}
	return nil
}
