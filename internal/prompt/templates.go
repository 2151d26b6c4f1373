package prompt

import (
	_ "embed"
)

// プロンプト生成モードの定義です。
const (
	ModeHome    = "home"    // 家庭料理向けの標準モード
	ModeGourmet = "gourmet" // 手間をかけた本格調理向けのモード
)

//go:embed home.md
var HomePrompt string

//go:embed gourmet.md
var GourmetPrompt string

// TemplateData はレシピプロンプトのテンプレートに渡すデータ構造です。
type TemplateData struct {
	DishName  string // 生成対象の料理名
	Reference string // 参考ページから抽出した本文（無ければ空）
}

// allTemplates はモードとテンプレート文字列を紐づけるマップです。
var allTemplates = map[string]string{
	ModeHome:    HomePrompt,
	ModeGourmet: GourmetPrompt,
}
