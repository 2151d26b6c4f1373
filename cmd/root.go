package cmd

import (
	"fmt"
	"os"

	"github.com/kekohu426/meishi/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は各サブコマンドで共有する実行時パラメータです。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義します。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.ReferenceURL, "reference-url", "u", "", "プロンプトに混ぜる参考ページのURLです。")
	rootCmd.PersistentFlags().StringVarP(&opts.RecipeFile, "recipe-file", "f", "", "既存レシピJSONのパス（image サブコマンド用）です。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先（ローカル or gs://...）です。")
	rootCmd.PersistentFlags().StringVarP(&opts.ImageHostDir, "image-host-dir", "i", config.DefaultImageHostDir, "生成画像の一次保存先（ローカル or gs://...）です。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Mode, "mode", "m", config.DefaultPromptMode, "プロンプト生成モード（home / gourmet）です。")
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "テキスト生成に使う Gemini モデル名です。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名です。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトです。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.ItemDelay, "item-delay", config.DefaultItemDelay, "バッチ項目間の待機時間です。")
	rootCmd.PersistentFlags().DurationVar(&opts.ShotTimeout, "shot-timeout", config.DefaultShotTimeout, "1ショットあたりの画像生成タイムアウトです。")
	rootCmd.PersistentFlags().IntVar(&opts.ShotRetries, "shot-retries", config.DefaultShotRetries, "画像生成の再試行回数です。")
	rootCmd.PersistentFlags().BoolVar(&opts.SkipImages, "skip-images", false, "画像解決をスキップします。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行います。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせません。
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須です")
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントです。
// main.go から呼び出されて、cobra のコマンドライン解析を開始します。
func Execute() {
	clibase.Execute(
		"meishi",
		addAppFlags,
		preRunAppE,
		generateCmd,
		scriptCmd,
		imageCmd,
	)
}

// loadConfig は環境設定とフラグをマージした Config を返します。
// モデル名はフラグが明示されたときだけ環境変数の値を上書きします。
func loadConfig(args []string) *config.Config {
	cfg := config.LoadConfig()
	if opts.AIModel != config.DefaultModel {
		cfg.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != config.DefaultImageModel {
		cfg.GeminiImageModel = opts.ImageModel
	}
	opts.Names = args
	cfg.Options = opts
	return cfg
}
