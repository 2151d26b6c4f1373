package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義です。
const (
	DefaultModel        = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultItemDelay    = 15 * time.Second // バッチ項目間の待機（レート制限対策）
	DefaultShotTimeout  = 90 * time.Second // 1ショットあたりの画像生成タイムアウト
	DefaultShotRetries  = 2                // 画像生成の再試行回数（初回を除く）
	DefaultOutputDir    = "output/recipes" // 成果物（JSON/MD/HTML）の保存先
	DefaultImageHostDir = "output/images"  // 生成画像の一次ホスティング先
	DefaultPromptMode   = "home"
	DefaultTemperature  = float32(0.4)
)

// Config はアプリケーション全体の環境設定（APIキーやストレージ設定）を保持する構造体です。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	// StorageBaseDir が設定されている場合、解決済み画像はこの配下へ
	// 再ホスティングされます（例: gs://my-bucket/recipes）。空ならスキップします。
	StorageBaseDir string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返します。
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		StorageBaseDir:   envutil.GetEnv("RECIPE_STORAGE_DIR", ""),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータです。
type GenerateOptions struct {
	// ソース入力関連
	Names        []string // 位置引数で渡された料理名のリスト
	ReferenceURL string   // --reference-url: プロンプトに混ぜる参考ページ
	RecipeFile   string   // --recipe-file: image サブコマンドの入力JSON

	// 生成結果の出力設定
	OutputDir    string // --output-dir
	ImageHostDir string // --image-host-dir

	// AI挙動設定
	Mode       string // --mode: プロンプト生成モード
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	ItemDelay   time.Duration // --item-delay: バッチ項目間の待機
	ShotTimeout time.Duration // --shot-timeout
	ShotRetries int           // --shot-retries
	SkipImages  bool          // --skip-images: 画像解決を行わない
	HTTPTimeout time.Duration // --http-timeout
}
