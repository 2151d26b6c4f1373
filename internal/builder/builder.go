package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	textbuilder "github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"google.golang.org/genai"

	"github.com/kekohu426/meishi/internal/config"
	"github.com/kekohu426/meishi/internal/prompt"
	"github.com/kekohu426/meishi/internal/runner"
	"github.com/kekohu426/meishi/pkg/adapters"
	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/publisher"
)

// 画像キャッシュの設定です。同一プロンプトの再生成を短時間抑止します。
const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
	defaultCacheTTL        = 1 * time.Hour
)

// BuildScriptRunner はレシピ生成・復元を担当する Runner を構築します。
func BuildScriptRunner(appCtx *AppContext) (*runner.RecipeScriptRunner, error) {
	pb, err := prompt.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの初期化に失敗しました: %w", err)
	}

	var extractor *extract.Extractor
	if appCtx.Options.ReferenceURL != "" {
		extractor, err = extract.NewExtractor(appCtx.httpClient)
		if err != nil {
			return nil, fmt.Errorf("extractor の初期化に失敗しました: %w", err)
		}
	}

	textGen := adapters.NewGeminiTextGenerator(appCtx.aiClient, appCtx.Config.GeminiModel)

	return runner.NewRecipeScriptRunner(
		textGen,
		extractor,
		pb,
		appCtx.Options.Mode,
		appCtx.Options.ReferenceURL,
	), nil
}

// BuildAssetResolver は画像ショットの解決を担当する Resolver を構築します。
func BuildAssetResolver(appCtx *AppContext) (*asset.Resolver, error) {
	imgGen, err := initializeImageGenerator(appCtx)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	images := adapters.NewGeminiImageGenerator(imgGen, appCtx.Writer, appCtx.Options.ImageHostDir)

	// 永続ストレージが設定されている場合のみ、再ホスティング経路を組み立てます。
	var storage adapters.Storage
	var fetcher asset.Fetcher
	if appCtx.Config.StorageBaseDir != "" {
		storage = adapters.NewRemoteStorage(appCtx.Writer, appCtx.Config.StorageBaseDir)
		fetcher = adapters.NewByteFetcher(appCtx.httpClient, appCtx.Reader)
	}

	cfg := asset.Config{
		ShotTimeout:   appCtx.Options.ShotTimeout,
		MaxRetries:    uint64(appCtx.Options.ShotRetries),
		RetryInterval: asset.DefaultRetryInterval,
	}
	return asset.NewResolver(images, storage, fetcher, cfg), nil
}

// BuildPublisher はコンテンツ保存と変換を行うパブリッシャーを構築します。
func BuildPublisher(appCtx *AppContext) (*publisher.RecipePublisher, error) {
	htmlCfg := textbuilder.BuilderConfig{
		EnableHardWraps: true,
	}
	appBuilder, err := textbuilder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}
	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	return publisher.NewRecipePublisher(appCtx.Writer, md2htmlRunner), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(config.DefaultTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializeImageGenerator は、画像キャッシュを含む ImageGenerator を初期化します。
func initializeImageGenerator(appCtx *AppContext) (imagekit.ImageGenerator, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.httpClient,
		imgCache,
		defaultCacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return imagekit.NewGeminiGenerator(appCtx.Config.GeminiImageModel, core)
}
