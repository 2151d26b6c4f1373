package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ByteFetcher は再ホスティング用に画像バイト列を取得します。
// http(s) URL は HTTP クライアントで、それ以外（ローカルパスや gs://）は
// リモートリーダーで読みます。
type ByteFetcher struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
}

// NewByteFetcher は取得元に応じて経路を切り替えるフェッチャを返します。
func NewByteFetcher(httpClient httpkit.ClientInterface, reader remoteio.InputReader) *ByteFetcher {
	return &ByteFetcher{
		httpClient: httpClient,
		reader:     reader,
	}
}

// Fetch は指定URLのバイト列を読み切って返します。
func (f *ByteFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return f.fetchHTTP(ctx, url)
	}

	rc, err := f.reader.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました (%s): %w", url, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (f *ByteFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("画像の取得に失敗しました (%s): %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("画像の取得に失敗しました (%s): status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
