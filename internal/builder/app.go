package builder

import (
	"github.com/kekohu426/meishi/internal/config"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持します。
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
// 能力（AIクライアント等）はここで一度だけ構築され、参照で配られます。
type AppContext struct {
	Config     *config.Config          // 環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // コマンドラインから渡された実行時の設定です。
	Reader     remoteio.InputReader    // 外部データやレシピJSONの読み込みに使用する入力元です。
	Writer     remoteio.OutputWriter   // 生成された内容を保存するための出力先です。
	aiClient   gemini.GenerativeModel  // Geminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // 外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成します。
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Reader:     reader,
		Writer:     writer,
	}
}
