// Package pipeline は CLI サブコマンドから呼ばれる実行フェーズの組み立てを担います。
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"

	"github.com/kekohu426/meishi/internal/builder"
	"github.com/kekohu426/meishi/internal/config"
	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/batch"
	"github.com/kekohu426/meishi/pkg/domain"
	"github.com/kekohu426/meishi/pkg/parser"
	"github.com/kekohu426/meishi/pkg/publisher"
)

// Execute は、料理名のリストに対して 生成 → 復元 → 画像解決 → 保存 の
// 全工程をバッチ実行します。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	scriptRunner, err := builder.BuildScriptRunner(appCtx)
	if err != nil {
		return fmt.Errorf("ScriptRunnerの構築に失敗しました: %w", err)
	}

	var resolver *asset.Resolver
	if !cfg.Options.SkipImages {
		resolver, err = builder.BuildAssetResolver(appCtx)
		if err != nil {
			return fmt.Errorf("AssetResolverの構築に失敗しました: %w", err)
		}
	}

	pub, err := builder.BuildPublisher(appCtx)
	if err != nil {
		return fmt.Errorf("Publisherの構築に失敗しました: %w", err)
	}

	itemFn := func(ctx context.Context, name string) (*domain.RecipeDocument, *asset.ResolutionReport, error) {
		doc, err := scriptRunner.Run(ctx, name)
		if err != nil {
			return nil, nil, err
		}

		var report *asset.ResolutionReport
		if resolver != nil {
			report = resolver.Resolve(ctx, doc)
			if report.CoverMissing {
				slog.Warn("カバー画像が選定できませんでした。画像なしで保存します", "dish", name)
			}
		}

		if _, err := pub.Publish(ctx, doc, report, publisher.Options{OutputDir: cfg.Options.OutputDir}); err != nil {
			return nil, nil, fmt.Errorf("「%s」の保存に失敗しました: %w", name, err)
		}
		return doc, report, nil
	}

	onProgress := func(current, total int, name string) {
		slog.Info("進捗", "current", current, "total", total, "dish", name)
	}

	coordinator := batch.NewCoordinator(itemFn, cfg.Options.ItemDelay, onProgress)
	report, err := coordinator.Run(ctx, cfg.Options.Names)

	slog.Info("バッチが完了しました",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"total", len(report.Results))
	return err
}

// ExecuteImageOnly は、既存のレシピJSON（台本）を読み込み、
// 画像解決と保存だけを実行します。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	doc, err := readRecipeFile(ctx, appCtx, cfg.Options.RecipeFile)
	if err != nil {
		return err
	}

	resolver, err := builder.BuildAssetResolver(appCtx)
	if err != nil {
		return fmt.Errorf("AssetResolverの構築に失敗しました: %w", err)
	}
	pub, err := builder.BuildPublisher(appCtx)
	if err != nil {
		return fmt.Errorf("Publisherの構築に失敗しました: %w", err)
	}

	report := resolver.Resolve(ctx, doc)
	slog.Info("画像解決が完了しました",
		"resolved", len(report.Resolved),
		"failed", len(report.Failures),
		"cover_missing", report.CoverMissing)

	if _, err := pub.Publish(ctx, doc, report, publisher.Options{OutputDir: cfg.Options.OutputDir}); err != nil {
		return fmt.Errorf("保存に失敗しました: %w", err)
	}
	return nil
}

// readRecipeFile は既存のレシピJSONを復元パイプライン経由で読み込みます。
// 正規のJSONはそのまま通り、モデルの生出力でも同じ経路で復元できます。
func readRecipeFile(ctx context.Context, appCtx *builder.AppContext, path string) (*domain.RecipeDocument, error) {
	if path == "" {
		return nil, fmt.Errorf("レシピファイル（--recipe-file）を指定してください")
	}

	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("レシピファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	doc, err := parser.Recover(string(raw))
	if err != nil {
		return nil, fmt.Errorf("レシピファイル '%s' の復元に失敗しました: %w", path, err)
	}
	return doc, nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、
// アプリケーションコンテキストを初期化して返します。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}
