package adapters

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-utils/urlpath"
)

// RemoteStorage は go-remote-io の書き込み口を Storage 契約に適合させます。
// baseDir がローカルパスならローカルに、gs:// なら GCS に書かれます。
type RemoteStorage struct {
	writer  remoteio.OutputWriter
	baseDir string
}

// NewRemoteStorage は書き込み先ディレクトリを固定したストレージを返します。
func NewRemoteStorage(writer remoteio.OutputWriter, baseDir string) *RemoteStorage {
	return &RemoteStorage{
		writer:  writer,
		baseDir: baseDir,
	}
}

// Upload はバイト列を baseDir 配下の相対パスへ書き込み、公開URLを返します。
func (s *RemoteStorage) Upload(ctx context.Context, data []byte, relPath string) (string, error) {
	fullPath, err := urlpath.ResolveOutputPath(s.baseDir, relPath)
	if err != nil {
		return "", fmt.Errorf("保存パスの解決に失敗しました: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if err := s.writer.Write(ctx, fullPath, bytes.NewReader(data), mimeType); err != nil {
		return "", fmt.Errorf("ストレージへの書き込みに失敗しました %s: %w", fullPath, err)
	}
	return PublicURL(fullPath), nil
}

// PublicURL は gs:// パスを Google Cloud Storage の公開URL形式へ変換します。
// それ以外（ローカルパスや http(s) URL）はそのまま返します。
func PublicURL(rawPath string) string {
	u, err := url.Parse(rawPath)
	if err != nil || u.Scheme != "gs" {
		return rawPath
	}
	public := &url.URL{
		Scheme: "https",
		Host:   "storage.googleapis.com",
		Path:   path.Join(u.Host, u.Path),
	}
	return public.String()
}
