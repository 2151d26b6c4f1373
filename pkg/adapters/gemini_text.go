package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiTextGenerator は go-gemini-client を TextGenerator 契約に適合させます。
type GeminiTextGenerator struct {
	client gemini.GenerativeModel
	model  string
}

// NewGeminiTextGenerator は構築済みの Gemini クライアントを包んで返します。
// クライアントのライフサイクル（生成・破棄）は呼び出し側が所有します。
func NewGeminiTextGenerator(client gemini.GenerativeModel, model string) *GeminiTextGenerator {
	return &GeminiTextGenerator{
		client: client,
		model:  model,
	}
}

// Generate はプロンプトを投げてモデルの応答テキストをそのまま返します。
func (g *GeminiTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", fmt.Errorf("gemini への生成リクエストに失敗しました: %w", err)
	}
	return resp.Text, nil
}
