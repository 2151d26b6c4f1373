package adapters

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-utils/urlpath"
)

// GeminiImageGenerator は gemini-image-kit を ImageGenerator 契約に適合させます。
// キットはバイト列を返すため、ホスティング用ディレクトリへ書き出した上で
// そのURL（ローカルパスまたは gs:// の公開URL）を返します。
type GeminiImageGenerator struct {
	generator imagekit.ImageGenerator
	writer    remoteio.OutputWriter
	hostDir   string
}

// NewGeminiImageGenerator は画像生成コアと書き込み先を束ねて返します。
func NewGeminiImageGenerator(gen imagekit.ImageGenerator, writer remoteio.OutputWriter, hostDir string) *GeminiImageGenerator {
	return &GeminiImageGenerator{
		generator: gen,
		writer:    writer,
		hostDir:   hostDir,
	}
}

// Generate は1枚の画像を生成してホスティング先のURLを返します。
func (g *GeminiImageGenerator) Generate(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	// gemini-image-kit はピクセル寸法ではなくアスペクト比指定なので、寸法から逆引きします。
	resp, err := g.generator.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:      req.Prompt,
		AspectRatio: aspectFor(req.Width, req.Height),
	})
	if err != nil {
		return nil, fmt.Errorf("画像の生成に失敗しました: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("画像生成の応答が空でした")
	}

	name := promptFileName(req.Prompt)
	fullPath, err := urlpath.ResolveOutputPath(g.hostDir, name)
	if err != nil {
		return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := g.writer.Write(ctx, fullPath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		return nil, fmt.Errorf("生成画像の書き込みに失敗しました %s: %w", fullPath, err)
	}

	return &ImageResult{
		URL:      PublicURL(fullPath),
		MimeType: resp.MimeType,
	}, nil
}

// aspectFor はピクセル寸法をキットが受けるアスペクト比文字列へ写します。
func aspectFor(width, height int) string {
	switch {
	case width == height || width <= 0 || height <= 0:
		return "1:1"
	case width*9 == height*16:
		return "16:9"
	case width*3 == height*4:
		return "4:3"
	case width*2 == height*3:
		return "3:2"
	default:
		return "1:1"
	}
}

// promptFileName はプロンプトから衝突しにくいファイル名を導出します。
func promptFileName(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "shot_" + hex.EncodeToString(sum[:6]) + ".png"
}
