package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kekohu426/meishi/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、既存のレシピJSONを読み込んで画像解決と保存だけを実行します。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "既存のレシピJSONに対して画像ショットを解決します。",
	Long: `--recipe-file で指定したレシピJSON（script サブコマンドの出力や
モデルの生出力）を読み込み、画像ショットの解決と成果物の保存を実行します。`,
	RunE: imageCommand,
}

func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.RecipeFile == "" {
		return fmt.Errorf("レシピファイル（--recipe-file）を指定してください")
	}

	cfg := loadConfig(args)

	slog.Info("画像解決を開始します", "recipe_file", opts.RecipeFile, "image_model", cfg.GeminiImageModel)

	if err := pipeline.ExecuteImageOnly(ctx, cfg); err != nil {
		return fmt.Errorf("画像解決中にエラーが発生しました: %w", err)
	}

	slog.Info("画像解決と保存が完了しました")
	return nil
}
