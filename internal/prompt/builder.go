package prompt

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"
)

// Builder はレシピプロンプトの構成を管理し、モード選択のロジックを内包します。
type Builder struct {
	templates map[string]*template.Template
}

// NewBuilder は埋め込みテンプレートを全モード分パースして返します。
func NewBuilder() (*Builder, error) {
	parsed := make(map[string]*template.Template)
	for mode, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}
		tmpl, err := template.New(mode).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗しました: %w", mode, err)
		}
		parsed[mode] = tmpl
	}
	return &Builder{templates: parsed}, nil
}

// Build は、要求されたモードに応じて適切なテンプレートを実行します。
func (b *Builder) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		supported := slices.Collect(maps.Keys(b.templates))
		slices.Sort(supported)
		return "", fmt.Errorf("サポートされていないモード: '%s'。サポートされているモードは [%s] です",
			mode, strings.Join(supported, ", "))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}
	return sb.String(), nil
}
