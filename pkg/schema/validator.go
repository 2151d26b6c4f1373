// Package schema はレシピ文書の構造・制約検証を担います。
// 検証は全てのフィールドを巡回し、違反を人間可読なメッセージの
// 順序付きリストとして返します（1件に切り詰めない）。副作用はありません。
package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/kekohu426/meishi/pkg/domain"
)

const (
	storyMinRunes = 50
	storyMaxRunes = 500
)

// Validate は解析・正規化済みの値をスキーマ制約と突き合わせます。
// 戻り値が空ならその値は domain.RecipeDocument として受理できます。
func Validate(value map[string]any) []string {
	v := &validator{}

	if version, ok := value["schemaVersion"].(string); !ok || version != domain.SchemaVersion {
		// バージョン不一致は互換の推測をせず即座に拒否します。
		v.addf("schemaVersion: %q のみ受理します (got %v)", domain.SchemaVersion, value["schemaVersion"])
	}

	v.requireString(value, "titleZh")
	if raw, ok := value["titleEn"]; ok && raw != nil {
		if _, ok := raw.(string); !ok {
			v.addf("titleEn: 文字列である必要があります")
		}
	}

	v.checkSummary(value)
	v.checkStory(value)
	v.checkIngredients(value)
	v.checkSteps(value)
	v.checkStyleGuide(value)
	v.checkImageShots(value)

	return v.issues
}

// validator は巡回中に発見した違反メッセージを順序を保って蓄積します。
type validator struct {
	issues []string
}

func (v *validator) addf(format string, args ...any) {
	v.issues = append(v.issues, fmt.Sprintf(format, args...))
}

func (v *validator) checkSummary(value map[string]any) {
	summary, ok := value["summary"].(map[string]any)
	if !ok {
		v.addf("summary: オブジェクトが必要です")
		return
	}

	difficulty, _ := summary["difficulty"].(string)
	if !contains(domain.Difficulties, difficulty) {
		v.addf("summary.difficulty: easy / medium / hard のいずれかが必要です (got %q)", difficulty)
	}
	for _, field := range []string{"timeTotalMin", "timeActiveMin", "servings"} {
		if n, ok := summary[field].(float64); !ok || n <= 0 {
			v.addf("summary.%s: 正の数値が必要です (got %v)", field, summary[field])
		}
	}
}

func (v *validator) checkStory(value map[string]any) {
	story, ok := value["story"].(map[string]any)
	if !ok {
		v.addf("story: オブジェクトが必要です")
		return
	}

	content, _ := story["content"].(string)
	if n := utf8.RuneCountInString(content); n < storyMinRunes || n > storyMaxRunes {
		v.addf("story.content: %d〜%d文字が必要です (got %d文字)", storyMinRunes, storyMaxRunes, n)
	}

	tags, ok := story["tags"].([]any)
	if !ok || len(tags) == 0 {
		v.addf("story.tags: 1件以上のタグが必要です")
		return
	}
	for i, t := range tags {
		if s, ok := t.(string); !ok || s == "" {
			v.addf("story.tags[%d]: 空でない文字列が必要です", i)
		}
	}
}

func (v *validator) checkIngredients(value map[string]any) {
	sections, ok := value["ingredients"].([]any)
	if !ok || len(sections) == 0 {
		v.addf("ingredients: 1件以上のセクションが必要です")
		return
	}

	for i, raw := range sections {
		section, ok := raw.(map[string]any)
		if !ok {
			v.addf("ingredients[%d]: オブジェクトが必要です", i)
			continue
		}
		if name, _ := section["section"].(string); name == "" {
			v.addf("ingredients[%d].section: 空でない文字列が必要です", i)
		}

		items, ok := section["items"].([]any)
		if !ok || len(items) == 0 {
			v.addf("ingredients[%d].items: 1件以上の材料が必要です", i)
			continue
		}
		for j, rawItem := range items {
			item, ok := rawItem.(map[string]any)
			if !ok {
				v.addf("ingredients[%d].items[%d]: オブジェクトが必要です", i, j)
				continue
			}
			v.checkIngredientItem(item, i, j)
		}
	}
}

func (v *validator) checkIngredientItem(item map[string]any, i, j int) {
	prefix := fmt.Sprintf("ingredients[%d].items[%d]", i, j)

	if name, _ := item["name"].(string); name == "" {
		v.addf("%s.name: 空でない文字列が必要です", prefix)
	}
	if iconKey, _ := item["iconKey"].(string); !domain.IsValidIconKey(iconKey) {
		v.addf("%s.iconKey: 未定義のアイコン分類です (got %q)", prefix, iconKey)
	}
	if amount, ok := item["amount"].(float64); !ok || amount <= 0 {
		v.addf("%s.amount: 正の数値が必要です (got %v)", prefix, item["amount"])
	}
	if unit, _ := item["unit"].(string); unit == "" {
		v.addf("%s.unit: 空でない文字列が必要です", prefix)
	}
}

func (v *validator) checkSteps(value map[string]any) {
	steps, ok := value["steps"].([]any)
	if !ok || len(steps) == 0 {
		v.addf("steps: 1件以上の手順が必要です")
		return
	}

	for i, raw := range steps {
		step, ok := raw.(map[string]any)
		if !ok {
			v.addf("steps[%d]: オブジェクトが必要です", i)
			continue
		}
		for _, field := range []string{"id", "title", "action", "speechText", "visualCue", "failPoint", "photoBrief"} {
			if s, _ := step[field].(string); s == "" {
				v.addf("steps[%d].%s: 空でない文字列が必要です", i, field)
			}
		}
		if timer, ok := step["timerSec"].(float64); !ok || timer < 0 {
			v.addf("steps[%d].timerSec: 0以上の数値が必要です (got %v)", i, step["timerSec"])
		}
	}
}

func (v *validator) checkStyleGuide(value map[string]any) {
	styleGuide, ok := value["styleGuide"].(map[string]any)
	if !ok {
		v.addf("styleGuide: オブジェクトが必要です")
		return
	}
	for _, field := range []string{"theme", "lighting", "composition", "aesthetic"} {
		if s, _ := styleGuide[field].(string); s == "" {
			v.addf("styleGuide.%s: 空でない文字列が必要です", field)
		}
	}
}

func (v *validator) checkImageShots(value map[string]any) {
	shots, ok := value["imageShots"].([]any)
	if !ok {
		v.addf("imageShots: 配列が必要です")
		return
	}

	for i, raw := range shots {
		shot, ok := raw.(map[string]any)
		if !ok {
			v.addf("imageShots[%d]: オブジェクトが必要です", i)
			continue
		}
		if key, _ := shot["key"].(string); key == "" {
			v.addf("imageShots[%d].key: 空でない文字列が必要です", i)
		}
		if prompt, _ := shot["imagePrompt"].(string); prompt == "" {
			v.addf("imageShots[%d].imagePrompt: 空でない文字列が必要です", i)
		}
		if ratio, _ := shot["ratio"].(string); !domain.IsValidRatio(ratio) {
			v.addf("imageShots[%d].ratio: 16:9 / 4:3 / 3:2 のいずれかが必要です (got %q)", i, shot["ratio"])
		}
	}
}

// requireString は必須の文字列フィールドを検査します。
func (v *validator) requireString(m map[string]any, field string) {
	if s, _ := m[field].(string); s == "" {
		v.addf("%s: 空でない文字列が必要です", field)
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
