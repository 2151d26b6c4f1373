package prompt

import (
	"strings"
	"testing"
)

func TestNewBuilder(t *testing.T) {
	if _, err := NewBuilder(); err != nil {
		t.Fatalf("埋め込みテンプレートのパースに失敗しました: %v", err)
	}
}

func TestBuilder_Build(t *testing.T) {
	builder, err := NewBuilder()
	if err != nil {
		t.Fatalf("ビルダーの構築に失敗しました: %v", err)
	}

	for _, mode := range []string{ModeHome, ModeGourmet} {
		t.Run(mode+" モードに料理名が埋め込まれます", func(t *testing.T) {
			got, err := builder.Build(mode, TemplateData{DishName: "麻婆豆腐"})
			if err != nil {
				t.Fatalf("ビルドに失敗しました: %v", err)
			}
			if !strings.Contains(got, "麻婆豆腐") {
				t.Errorf("料理名が埋め込まれるはずです")
			}
			if !strings.Contains(got, "schemaVersion") {
				t.Errorf("スキーマの指示が含まれるはずです")
			}
		})
	}

	t.Run("参考情報は指定されたときだけ現れます", func(t *testing.T) {
		withRef, err := builder.Build(ModeHome, TemplateData{
			DishName:  "麻婆豆腐",
			Reference: "豆瓣酱要先煸炒出红油",
		})
		if err != nil {
			t.Fatalf("ビルドに失敗しました: %v", err)
		}
		if !strings.Contains(withRef, "豆瓣酱要先煸炒出红油") {
			t.Errorf("参考テキストが埋め込まれるはずです")
		}

		withoutRef, err := builder.Build(ModeHome, TemplateData{DishName: "麻婆豆腐"})
		if err != nil {
			t.Fatalf("ビルドに失敗しました: %v", err)
		}
		if strings.Contains(withoutRef, "豆瓣酱") {
			t.Errorf("参考なしのプロンプトに参照が残ってはいけません")
		}
	})

	t.Run("未知のモードはサポート一覧付きで拒否されます", func(t *testing.T) {
		_, err := builder.Build("michelin", TemplateData{DishName: "麻婆豆腐"})
		if err == nil {
			t.Fatalf("エラーが返るはずです")
		}
		if !strings.Contains(err.Error(), ModeHome) || !strings.Contains(err.Error(), ModeGourmet) {
			t.Errorf("エラーにサポートモード一覧が含まれるはずです: %v", err)
		}
	})
}
