package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-web-exact/v2/pkg/extract"

	"github.com/kekohu426/meishi/internal/prompt"
	"github.com/kekohu426/meishi/pkg/adapters"
	"github.com/kekohu426/meishi/pkg/domain"
	"github.com/kekohu426/meishi/pkg/parser"
)

// RecipeScriptRunner は、料理名からレシピ文書を生成・復元する核となる構造体です。
// プロンプト構築 → テキスト生成 → 応答復元 を一気に行います。
type RecipeScriptRunner struct {
	textGen       adapters.TextGenerator
	extractor     *extract.Extractor // 参考ページから本文を抽出するエクストラクター（nil可）
	promptBuilder *prompt.Builder
	mode          string
	referenceURL  string
}

// NewRecipeScriptRunner は RecipeScriptRunner の新しいインスタンスを生成して返します。
func NewRecipeScriptRunner(
	textGen adapters.TextGenerator,
	ext *extract.Extractor,
	pb *prompt.Builder,
	mode string,
	referenceURL string,
) *RecipeScriptRunner {
	return &RecipeScriptRunner{
		textGen:       textGen,
		extractor:     ext,
		promptBuilder: pb,
		mode:          mode,
		referenceURL:  referenceURL,
	}
}

// Run は1つの料理名に対してレシピ文書を生成します。
// テキスト生成能力そのものの失敗は *parser.UpstreamError として返し、
// 応答の構文・スキーマ不良は parser の型付きエラーがそのまま伝わります。
func (r *RecipeScriptRunner) Run(ctx context.Context, dishName string) (*domain.RecipeDocument, error) {
	reference, err := r.readReference(ctx)
	if err != nil {
		return nil, err
	}

	promptContent, err := r.promptBuilder.Build(r.mode, prompt.TemplateData{
		DishName:  dishName,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("レシピ生成を依頼します", "dish", dishName, "mode", r.mode)
	raw, err := r.textGen.Generate(ctx, promptContent)
	if err != nil {
		return nil, &parser.UpstreamError{Err: err}
	}

	doc, err := parser.Recover(raw)
	if err != nil {
		return nil, fmt.Errorf("「%s」の応答復元に失敗しました: %w", dishName, err)
	}

	slog.Info("レシピ文書を復元しました", "dish", dishName, "steps", len(doc.Steps), "shots", len(doc.ImageShots))
	return doc, nil
}

// readReference は参考URLが指定されている場合のみ本文を抽出します。
func (r *RecipeScriptRunner) readReference(ctx context.Context) (string, error) {
	if r.referenceURL == "" || r.extractor == nil {
		return "", nil
	}
	text, _, err := r.extractor.FetchAndExtractText(ctx, r.referenceURL)
	if err != nil {
		return "", fmt.Errorf("参考ページの抽出に失敗しました (%s): %w", r.referenceURL, err)
	}
	return text, nil
}
