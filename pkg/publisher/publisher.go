// Package publisher は復元済みレシピ文書の永続化（JSON / Markdown / HTML）を担います。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
	"github.com/shouni/go-utils/urlpath"

	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/domain"
)

const (
	defaultJSONName     = "recipe.json"
	defaultMarkdownName = "recipe.md"
	defaultHTMLName     = "recipe.html"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult は生成されたファイルのパスを保持します。
type PublishResult struct {
	JSONPath     string
	MarkdownPath string
	HTMLPath     string
}

// RecipePublisher は成果物の永続化とフォーマット変換を担います。
type RecipePublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewRecipePublisher は書き込み先と HTML 変換ランナーを束ねて返します。
// htmlRunner は nil 可で、その場合 HTML 変換はスキップされます。
func NewRecipePublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *RecipePublisher {
	return &RecipePublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は文書を <OutputDir>/<slug>/ 配下へ JSON・Markdown・HTML として保存します。
func (p *RecipePublisher) Publish(ctx context.Context, doc *domain.RecipeDocument, report *asset.ResolutionReport, opts Options) (PublishResult, error) {
	result := PublishResult{}

	docDir, err := urlpath.ResolveOutputPath(opts.OutputDir, doc.Slug())
	if err != nil {
		return result, fmt.Errorf("出力ディレクトリの解決に失敗しました: %w", err)
	}

	// 1. 正準JSON
	jsonPath, err := urlpath.ResolveOutputPath(docDir, defaultJSONName)
	if err != nil {
		return result, err
	}
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return result, fmt.Errorf("レシピJSONのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(encoded), "application/json; charset=utf-8"); err != nil {
		return result, fmt.Errorf("レシピJSONの書き込みに失敗しました: %w", err)
	}
	result.JSONPath = jsonPath

	// 2. Markdown
	mdPath, err := urlpath.ResolveOutputPath(docDir, defaultMarkdownName)
	if err != nil {
		return result, err
	}
	content := buildMarkdown(doc, report)
	if err := p.writer.Write(ctx, mdPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = mdPath

	// 3. HTML変換
	if p.htmlRunner != nil {
		slog.Info("HTMLへ変換しています", "title", doc.TitleZh)
		htmlBuffer, err := p.htmlRunner.Run(ctx, doc.TitleZh, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}
		htmlPath, err := urlpath.ResolveOutputPath(docDir, defaultHTMLName)
		if err != nil {
			return result, err
		}
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}
