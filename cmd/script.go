package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kekohu426/meishi/internal/pipeline"

	"github.com/spf13/cobra"
)

// scriptCmd は、画像解決を行わずにレシピ文書の生成・復元だけを実行します。
// まず文書の中身を確認してから画像コストをかけたい場合に使います。
var scriptCmd = &cobra.Command{
	Use:   "script [料理名...]",
	Short: "レシピJSONの生成と復元だけを実行します（画像なし）。",
	RunE:  scriptCommand,
}

func scriptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 0 {
		return fmt.Errorf("料理名を1つ以上指定してください")
	}

	cfg := loadConfig(args)
	cfg.Options.SkipImages = true

	slog.Info("レシピ文書のみを生成します", "dishes", len(args), "mode", opts.Mode)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生しました: %w", err)
	}
	return nil
}
