// Package asset は、検証済みレシピ文書の画像ショットを実際の画像URLへ
// 解決するオーケストレータです。上流のレート制限を尊重するため、
// ショットは常に逐次処理します（並列化しません）。
package asset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kekohu426/meishi/pkg/adapters"
	"github.com/kekohu426/meishi/pkg/domain"
)

// デフォルトの解決ポリシーです。
const (
	DefaultShotTimeout   = 90 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryInterval = 5 * time.Second
)

// coverKeys はカバー画像として優先されるショットキーです（先頭ほど優先）。
var coverKeys = []string{"hero", "cover"}

// Config は Resolver の再試行・タイムアウト方針です。
type Config struct {
	ShotTimeout   time.Duration // 1ショットあたりの生成タイムアウト
	MaxRetries    uint64        // 失敗時の再試行回数（初回を除く）
	RetryInterval time.Duration // 再試行間の固定待機
}

// DefaultConfig は推奨されるデフォルト方針を返します。
func DefaultConfig() Config {
	return Config{
		ShotTimeout:   DefaultShotTimeout,
		MaxRetries:    DefaultMaxRetries,
		RetryInterval: DefaultRetryInterval,
	}
}

// Fetcher は再ホスティングのために生成済み画像のバイト列を取得する能力です。
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolver は文書内の全ショットを逐次解決し、結果をレポートへ集約します。
// storage と fetcher が両方設定されている場合のみ、生成画像を永続ストレージへ
// 移し替えます（ベストエフォート。失敗しても元のURLを維持します）。
type Resolver struct {
	images  adapters.ImageGenerator
	storage adapters.Storage
	fetcher Fetcher
	cfg     Config
}

// NewResolver は Resolver を構築します。storage / fetcher は nil 可です。
func NewResolver(images adapters.ImageGenerator, storage adapters.Storage, fetcher Fetcher, cfg Config) *Resolver {
	if cfg.ShotTimeout <= 0 {
		cfg.ShotTimeout = DefaultShotTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	return &Resolver{
		images:  images,
		storage: storage,
		fetcher: fetcher,
		cfg:     cfg,
	}
}

// Resolve は文書の各ショットに対して画像生成を実行し、成功したものから順に
// imageUrl を一度だけ書き込みます。ショット単位の失敗はレポートに記録するだけで、
// 処理全体を中断しません。画像が1枚も取れなくても文書は「生成済み」のままです。
func (r *Resolver) Resolve(ctx context.Context, doc *domain.RecipeDocument) *ResolutionReport {
	report := NewResolutionReport()
	slug := doc.Slug()

	for i := range doc.ImageShots {
		// キャンセルはショット間でのみ確認します。確定済みの結果は保持されます。
		if ctx.Err() != nil {
			slog.Warn("キャンセルされたため残りのショットをスキップします", "slug", slug, "done", i, "total", len(doc.ImageShots))
			break
		}

		shot := &doc.ImageShots[i]
		if strings.TrimSpace(shot.ImagePrompt) == "" {
			report.Failures[shot.Key] = "画像プロンプトが空です"
			continue
		}

		slog.Info("ショットを解決しています", "slug", slug, "key", shot.Key, "ratio", shot.Ratio)
		result, err := r.generateWithRetry(ctx, shot)
		if err != nil {
			slog.Error("ショットの解決に失敗しました", "key", shot.Key, "error", err)
			report.Failures[shot.Key] = err.Error()
			continue
		}

		url := result.URL
		if r.storage != nil && r.fetcher != nil {
			url = r.rehost(ctx, slug, shot, url)
		}

		shot.ImageURL = url
		report.Resolved = append(report.Resolved, shot.Key)
	}

	r.selectCover(doc, report)
	return report
}

// generateWithRetry は1ショットを タイムアウト付き + 固定間隔の有限再試行 で生成します。
func (r *Resolver) generateWithRetry(ctx context.Context, shot *domain.ImageShot) (*adapters.ImageResult, error) {
	width, height := dimensionsFor(shot.Ratio)

	var result *adapters.ImageResult
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.ShotTimeout)
		defer cancel()

		res, err := r.images.Generate(callCtx, adapters.ImageRequest{
			Prompt: shot.ImagePrompt,
			Width:  width,
			Height: height,
		})
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.cfg.RetryInterval), r.cfg.MaxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return result, nil
}

// rehost は生成画像を取得し直して永続ストレージへ移します。
// どの段階で失敗しても元のURLを返すだけで、致命的には扱いません。
func (r *Resolver) rehost(ctx context.Context, slug string, shot *domain.ImageShot, originalURL string) string {
	data, err := r.fetcher.Fetch(ctx, originalURL)
	if err != nil {
		slog.Warn("再ホスティング用の画像取得に失敗しました。元のURLを維持します", "key", shot.Key, "error", err)
		return originalURL
	}

	relPath := path.Join(slug, rehostFileName(shot))
	hosted, err := r.storage.Upload(ctx, data, relPath)
	if err != nil {
		slog.Warn("永続ストレージへの移動に失敗しました。元のURLを維持します", "key", shot.Key, "error", err)
		return originalURL
	}

	slog.Info("画像を永続ストレージへ移しました", "key", shot.Key, "path", relPath)
	return hosted
}

// selectCover はカバー画像を選定します。hero / cover キーを優先し、
// 無ければ宣言順で最初に解決できたショットへフォールバックします。
func (r *Resolver) selectCover(doc *domain.RecipeDocument, report *ResolutionReport) {
	for _, key := range coverKeys {
		if shot := doc.ShotByKey(key); shot != nil && shot.ImageURL != "" {
			report.CoverImage = shot.ImageURL
			return
		}
	}
	for _, shot := range doc.ImageShots {
		if shot.ImageURL != "" {
			report.CoverImage = shot.ImageURL
			return
		}
	}
	report.CoverMissing = true
}

// dimensionsFor はアスペクト比をピクセル寸法へ写します。未知の比は正方形です。
func dimensionsFor(ratio string) (int, int) {
	switch ratio {
	case "16:9":
		return 1280, 720
	case "4:3":
		return 1024, 768
	case "3:2":
		return 1200, 800
	default:
		return 1024, 1024
	}
}

// rehostFileName はショットキーとプロンプトのハッシュから衝突しない名前を作ります。
func rehostFileName(shot *domain.ImageShot) string {
	sum := sha256.Sum256([]byte(shot.ImagePrompt))
	return fmt.Sprintf("%s_%s.png", shot.Key, hex.EncodeToString(sum[:4]))
}
