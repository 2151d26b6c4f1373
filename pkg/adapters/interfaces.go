// Package adapters は、パイプラインが消費する外部能力の契約と、
// その Gemini / リモートストレージ実装を提供します。
// 能力はプロセス起動時に一度だけ構築し、参照で渡して使い回します
// （隠れたグローバルなプロバイダは持ちません）。
package adapters

import "context"

// TextGenerator はプロンプトからテキストを生成する能力です。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageRequest は1枚の画像生成依頼です。タイムアウトや再試行は
// 呼び出し側（AssetResolver）が ctx と再試行予算で制御します。
type ImageRequest struct {
	Prompt string
	Width  int
	Height int
}

// ImageResult は生成された画像の参照先です。
type ImageResult struct {
	URL      string
	MimeType string
}

// ImageGenerator はプロンプトと寸法から画像を生成する能力です。
type ImageGenerator interface {
	Generate(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// Storage はバイト列を永続ストレージへ配置し、公開URLを返す能力です。
// 設定されていない場合、再ホスティングはスキップされ元のURLが維持されます。
type Storage interface {
	Upload(ctx context.Context, data []byte, path string) (string, error)
}
