package parser

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/kekohu426/meishi/pkg/domain"
	"github.com/kekohu426/meishi/pkg/schema"
)

// snippetRadius は MalformedError に載せる診断抜粋の片側の文字数です。
const snippetRadius = 40

// Recover は生成モデルの生テキストを検証済みの RecipeDocument へ復元します。
// 処理は サニタイズ → JSON解析 → エンベロープ展開 → 正規化 → スキーマ検証 の順で、
// 失敗した段階で *MalformedError または *SchemaError を返して打ち切ります。
func Recover(raw string) (*domain.RecipeDocument, error) {
	sanitized := Sanitize(raw)

	var value map[string]any
	if err := json.Unmarshal([]byte(sanitized), &value); err != nil {
		return nil, malformed(sanitized, err)
	}

	value = unwrapEnvelope(value)
	value = Normalize(value)

	if issues := schema.Validate(value); len(issues) > 0 {
		slog.Warn("スキーマ検証に失敗しました", "issues", len(issues), "first", issues[0])
		return nil, &SchemaError{Issues: issues}
	}

	// 検証済みのマップを型付き文書へ移します。形は検証済みなので失敗しない想定ですが、
	// 念のためエラーは Malformed として扱います。
	doc, err := toDocument(value)
	if err != nil {
		return nil, malformed(sanitized, err)
	}
	return doc, nil
}

// unwrapEnvelope は {"recipe": {...}} のようにモデルが付けがちな外枠を外します。
// recipe がオブジェクトの場合のみ、兄弟フィールドへ上書きマージします
// （同名フィールドは入れ子側の値が勝ちます）。
func unwrapEnvelope(value map[string]any) map[string]any {
	inner, ok := value["recipe"].(map[string]any)
	if !ok {
		return value
	}

	merged := make(map[string]any, len(value)+len(inner))
	for k, v := range value {
		if k != "recipe" {
			merged[k] = v
		}
	}
	for k, v := range inner {
		merged[k] = v
	}
	return merged
}

// toDocument は検証済みマップを RecipeDocument に詰め替えます。
func toDocument(value map[string]any) (*domain.RecipeDocument, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var doc domain.RecipeDocument
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// malformed は JSON 解析エラーを診断抜粋付きの MalformedError に変換します。
func malformed(sanitized string, err error) *MalformedError {
	offset := int64(-1)

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	return &MalformedError{
		Message: err.Error(),
		Offset:  offset,
		Snippet: snippetAround(sanitized, offset),
	}
}

// snippetAround はオフセットを中心とした境界安全な抜粋を返します。
func snippetAround(s string, offset int64) string {
	if offset < 0 || len(s) == 0 {
		return ""
	}
	center := int(offset)
	if center > len(s) {
		center = len(s)
	}
	start := center - snippetRadius
	if start < 0 {
		start = 0
	}
	end := center + snippetRadius
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
