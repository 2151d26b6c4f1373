// Package batch は、複数の料理名に対して復元パイプラインを順番に駆動する
// コーディネータです。常に単一の論理ワーカーで逐次実行し、結果は入力順に
// 積み上げます。1件の失敗がバッチ全体を止めることはありません。
package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/domain"
)

// DefaultItemDelay は上流のレート制限を避けるための項目間の待機です。
const DefaultItemDelay = 15 * time.Second

// ItemFunc は1件分の処理（復元＋任意で画像解決）です。
type ItemFunc func(ctx context.Context, name string) (*domain.RecipeDocument, *asset.ResolutionReport, error)

// ProgressFunc は各項目の処理前に呼ばれる進捗通知です。current は1始まりです。
type ProgressFunc func(current, total int, name string)

// ItemResult は1件分の結果です。Err が nil なら Document が有効です。
type ItemResult struct {
	Name     string
	Document *domain.RecipeDocument
	Assets   *asset.ResolutionReport
	Err      error
}

// Report はバッチ全体の集計と、入力順の全結果です。
type Report struct {
	Succeeded int
	Failed    int
	Results   []ItemResult
}

// Coordinator は項目間のペーシングと進捗通知を担います。
type Coordinator struct {
	process    ItemFunc
	limiter    *rate.Limiter
	onProgress ProgressFunc
}

// NewCoordinator はコーディネータを構築します。delay が 0 以下なら待機しません。
// onProgress は nil 可です。
func NewCoordinator(process ItemFunc, delay time.Duration, onProgress ProgressFunc) *Coordinator {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Coordinator{
		process: process,
		// バースト1なので先頭の項目は待たされず、2件目以降が delay 間隔になります。
		limiter:    rate.NewLimiter(limit, 1),
		onProgress: onProgress,
	}
}

// Run は names を宣言順に処理し、集計レポートを返します。
// キャンセル時はそこで打ち切り、蓄積済みの結果をそのまま返します。
func (c *Coordinator) Run(ctx context.Context, names []string) (Report, error) {
	report := Report{Results: make([]ItemResult, 0, len(names))}
	total := len(names)

	for i, name := range names {
		if err := c.limiter.Wait(ctx); err != nil {
			slog.Warn("バッチが中断されました", "done", i, "total", total)
			return report, err
		}

		c.notify(i+1, total, name)
		slog.Info("バッチ項目を処理します", "index", i+1, "total", total, "name", name)

		doc, assets, err := c.process(ctx, name)
		result := ItemResult{Name: name, Document: doc, Assets: assets, Err: err}
		report.Results = append(report.Results, result)

		if err != nil {
			// 失敗は記録して次の項目へ進みます。バッチは途中で止めません。
			report.Failed++
			slog.Error("バッチ項目が失敗しました", "name", name, "error", err)
			continue
		}
		report.Succeeded++
	}

	return report, nil
}

// notify は進捗コールバックを呼びます。コールバック内の panic は
// バッチを巻き込まないよう、ここで回収してログに落とします。
func (c *Coordinator) notify(current, total int, name string) {
	if c.onProgress == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("進捗コールバックで panic が発生しました。バッチは継続します", "panic", rec)
		}
	}()
	c.onProgress(current, total, name)
}
