package parser

import (
	"strconv"
	"strings"
)

// Normalize はパース直後の緩い型付きの値を、スキーマ検証が期待する型へ寄せます。
// 入力マップをその場で書き換えて返し、失敗しません。冪等です。
//
//   - summary の timeTotalMin / timeActiveMin / servings: 文字列なら整数として解釈
//   - 材料の amount: 文字列なら浮動小数として解釈。解釈できない場合は amount=1 とし、
//     unit が空なら元のテキストを unit へ退避します（情報を捨てない）
//   - steps の timerSec: 文字列なら整数として解釈
//
// それ以外のフィールドには触れません。
func Normalize(value map[string]any) map[string]any {
	if value == nil {
		return nil
	}

	if summary, ok := value["summary"].(map[string]any); ok {
		for _, field := range []string{"timeTotalMin", "timeActiveMin", "servings"} {
			coerceInt(summary, field)
		}
	}

	if sections, ok := value["ingredients"].([]any); ok {
		for _, s := range sections {
			section, ok := s.(map[string]any)
			if !ok {
				continue
			}
			items, ok := section["items"].([]any)
			if !ok {
				continue
			}
			for _, it := range items {
				if item, ok := it.(map[string]any); ok {
					normalizeAmount(item)
				}
			}
		}
	}

	if steps, ok := value["steps"].([]any); ok {
		for _, s := range steps {
			if step, ok := s.(map[string]any); ok {
				coerceInt(step, "timerSec")
			}
		}
	}

	return value
}

// coerceInt は文字列化された数値フィールドを float64（JSON数値の内部表現）へ戻します。
func coerceInt(m map[string]any, field string) {
	s, ok := m[field].(string)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		m[field] = float64(n)
	}
}

// normalizeAmount は amount の文字列値を数値化し、数値として読めない
// テキスト（「適量」「少々」等）は amount=1 + unit へ退避します。
func normalizeAmount(item map[string]any) {
	s, ok := item["amount"].(string)
	if !ok {
		return
	}
	trimmed := strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		item["amount"] = f
		return
	}

	item["amount"] = float64(1)
	unit, _ := item["unit"].(string)
	if strings.TrimSpace(unit) == "" && trimmed != "" {
		item["unit"] = trimmed
	}
}
