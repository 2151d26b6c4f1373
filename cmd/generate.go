package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kekohu426/meishi/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによるレシピ生成・画像解決・保存を一括実行します。
var generateCmd = &cobra.Command{
	Use:   "generate [料理名...]",
	Short: "料理名からレシピ文書と画像を一括生成します。",
	Long: `指定された料理名ごとに、レシピJSONの生成・復元、画像ショットの解決、
成果物（JSON / Markdown / HTML）の保存までを順番に実行します。
複数の料理名を渡すと、レート制限を考慮した間隔でバッチ処理されます。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 0 {
		return fmt.Errorf("料理名を1つ以上指定してください")
	}

	cfg := loadConfig(args)

	slog.Info("レシピ生成パイプラインを起動します",
		"dishes", len(args),
		"mode", opts.Mode,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生しました: %w", err)
	}

	slog.Info("すべての生成工程が完了しました")
	return nil
}
