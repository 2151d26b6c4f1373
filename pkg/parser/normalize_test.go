package parser

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeMap(t *testing.T, raw string) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("テストデータのパースに失敗しました: %v", err)
	}
	return v
}

func TestNormalize_SummaryCoercion(t *testing.T) {
	value := decodeMap(t, `{
		"summary": {"timeTotalMin": "30", "timeActiveMin": "20", "servings": "2", "difficulty": "easy"}
	}`)

	got := Normalize(value)

	summary := got["summary"].(map[string]any)
	if summary["timeTotalMin"] != float64(30) {
		t.Errorf("timeTotalMin が数値化されていません: %v", summary["timeTotalMin"])
	}
	if summary["timeActiveMin"] != float64(20) {
		t.Errorf("timeActiveMin が数値化されていません: %v", summary["timeActiveMin"])
	}
	if summary["servings"] != float64(2) {
		t.Errorf("servings が数値化されていません: %v", summary["servings"])
	}
	if summary["difficulty"] != "easy" {
		t.Errorf("difficulty は文字列のまま残るはずです: %v", summary["difficulty"])
	}
}

func TestNormalize_TimerSec(t *testing.T) {
	value := decodeMap(t, `{
		"steps": [{"id": "step01", "timerSec": "120"}, {"id": "step02", "timerSec": 0}]
	}`)

	got := Normalize(value)

	steps := got["steps"].([]any)
	if step := steps[0].(map[string]any); step["timerSec"] != float64(120) {
		t.Errorf("timerSec が数値化されていません: %v", step["timerSec"])
	}
	if step := steps[1].(map[string]any); step["timerSec"] != float64(0) {
		t.Errorf("数値の timerSec は変化しないはずです: %v", step["timerSec"])
	}
}

func TestNormalize_Amount(t *testing.T) {
	t.Run("数値文字列は数値になります", func(t *testing.T) {
		value := decodeMap(t, `{
			"ingredients": [{"section": "主料", "items": [{"name": "盐", "amount": "0.5", "unit": "克"}]}]
		}`)

		got := Normalize(value)

		item := got["ingredients"].([]any)[0].(map[string]any)["items"].([]any)[0].(map[string]any)
		if item["amount"] != float64(0.5) {
			t.Errorf("amount が数値化されていません: %v", item["amount"])
		}
		if item["unit"] != "克" {
			t.Errorf("unit は変化しないはずです: %v", item["unit"])
		}
	})

	t.Run("数値化できない文字列は単位に退避します", func(t *testing.T) {
		value := decodeMap(t, `{
			"ingredients": [{"section": "调料", "items": [{"name": "盐", "amount": "适量", "unit": ""}]}]
		}`)

		got := Normalize(value)

		item := got["ingredients"].([]any)[0].(map[string]any)["items"].([]any)[0].(map[string]any)
		if item["amount"] != float64(1) {
			t.Errorf("amount は 1 に倒れるはずです: %v", item["amount"])
		}
		if item["unit"] != "适量" {
			t.Errorf("元のテキストが unit に移るはずです: %v", item["unit"])
		}
	})

	t.Run("unit が埋まっている場合は上書きしません", func(t *testing.T) {
		value := decodeMap(t, `{
			"ingredients": [{"section": "调料", "items": [{"name": "盐", "amount": "少许", "unit": "克"}]}]
		}`)

		got := Normalize(value)

		item := got["ingredients"].([]any)[0].(map[string]any)["items"].([]any)[0].(map[string]any)
		if item["amount"] != float64(1) {
			t.Errorf("amount は 1 に倒れるはずです: %v", item["amount"])
		}
		if item["unit"] != "克" {
			t.Errorf("既存の unit は保持されるはずです: %v", item["unit"])
		}
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	value := decodeMap(t, `{
		"summary": {"timeTotalMin": "30", "servings": 2},
		"steps": [{"timerSec": "60"}],
		"ingredients": [{"section": "主料", "items": [{"name": "盐", "amount": "适量", "unit": ""}]}]
	}`)

	once := Normalize(value)
	twice := Normalize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("正規化は冪等であるはずです:\nonce=%+v\ntwice=%+v", once, twice)
	}
}
