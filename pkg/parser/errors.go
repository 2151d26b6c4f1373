package parser

import (
	"fmt"
	"strings"
)

// MalformedError はサニタイズ後のテキストが JSON として解析できなかったことを表します。
// パーサがオフセットを報告した場合は、その周辺の短い抜粋を診断用に保持します。
type MalformedError struct {
	Message string
	Offset  int64  // 不明な場合は -1
	Snippet string // オフセット周辺のサニタイズ済みテキスト
}

func (e *MalformedError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("応答を JSON として解析できませんでした: %s", e.Message)
	}
	return fmt.Sprintf("応答を JSON として解析できませんでした: %s (offset %d 付近: %q)", e.Message, e.Offset, e.Snippet)
}

// SchemaError は解析・正規化後の値がスキーマ制約を満たさなかったことを表します。
// 再プロンプトの判断材料になるよう、違反したフィールドの一覧を欠けなく保持します。
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("スキーマ検証に失敗しました (%d件): %s", len(e.Issues), strings.Join(e.Issues, "; "))
}

// UpstreamError はテキスト生成側の能力（ネットワークやクォータ等）自体の失敗です。
// 元のエラーをそのまま運びます。この層では再試行しません。
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("テキスト生成に失敗しました: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
