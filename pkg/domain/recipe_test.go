package domain

import (
	"strings"
	"testing"
)

func TestRecipeDocument_Slug(t *testing.T) {
	cases := []struct {
		name string
		doc  RecipeDocument
		want string
	}{
		{
			"英語タイトルからスラグを導出します",
			RecipeDocument{TitleEn: "Tomato and Egg Stir-fry", TitleZh: "西红柿炒鸡蛋"},
			"tomato-and-egg-stir-fry",
		},
		{
			"記号の連続はハイフン1つに潰します",
			RecipeDocument{TitleEn: "  Mapo -- Tofu!! (classic) "},
			"mapo-tofu-classic",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.doc.Slug(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("中国語タイトルのみの場合はハッシュで代替します", func(t *testing.T) {
		doc := RecipeDocument{TitleZh: "西红柿炒鸡蛋"}

		got := doc.Slug()
		if !strings.HasPrefix(got, "recipe-") {
			t.Fatalf("ハッシュ代替のスラグになるはずです: %q", got)
		}
		if len(got) != len("recipe-")+8 {
			t.Errorf("ハッシュ部は8文字のはずです: %q", got)
		}

		// 同じタイトルからは常に同じスラグが導出されます。
		if again := doc.Slug(); again != got {
			t.Errorf("スラグは安定しているはずです: %q != %q", again, got)
		}
	})

	t.Run("英語タイトルが記号のみなら代替へ倒れます", func(t *testing.T) {
		doc := RecipeDocument{TitleEn: "!!??", TitleZh: "麻婆豆腐"}
		if got := doc.Slug(); !strings.HasPrefix(got, "recipe-") {
			t.Errorf("ハッシュ代替のスラグになるはずです: %q", got)
		}
	})
}

func TestRecipeDocument_ShotByKey(t *testing.T) {
	doc := RecipeDocument{
		ImageShots: []ImageShot{
			{Key: "hero", ImagePrompt: "hero"},
			{Key: "step01", ImagePrompt: "step01"},
		},
	}

	t.Run("一致するショットを返します", func(t *testing.T) {
		shot := doc.ShotByKey("step01")
		if shot == nil || shot.Key != "step01" {
			t.Errorf("step01 が見つかるはずです: %+v", shot)
		}
	})

	t.Run("戻り値は実体への参照です", func(t *testing.T) {
		doc.ShotByKey("hero").ImageURL = "https://example.com/hero.png"
		if doc.ImageShots[0].ImageURL == "" {
			t.Errorf("ポインタ経由の書き込みが文書に反映されるはずです")
		}
	})

	t.Run("見つからなければ nil を返します", func(t *testing.T) {
		if shot := doc.ShotByKey("missing"); shot != nil {
			t.Errorf("nil が返るはずです: %+v", shot)
		}
	})
}

func TestRecipeDocument_ResolvedShots(t *testing.T) {
	doc := RecipeDocument{
		ImageShots: []ImageShot{
			{Key: "hero", ImageURL: "https://example.com/hero.png"},
			{Key: "step01"},
			{Key: "step02", ImageURL: "https://example.com/step02.png"},
		},
	}

	resolved := doc.ResolvedShots()
	if len(resolved) != 2 {
		t.Fatalf("解決済みは2件のはずです: %d", len(resolved))
	}
	if resolved[0].Key != "hero" || resolved[1].Key != "step02" {
		t.Errorf("宣言順が保たれるはずです: %+v", resolved)
	}
}

func TestIsValidIconKey(t *testing.T) {
	for _, key := range IconKeys {
		if !IsValidIconKey(key) {
			t.Errorf("%q は有効なはずです", key)
		}
	}
	if IsValidIconKey("rocket") || IsValidIconKey("") {
		t.Errorf("未定義のキーは拒否されるはずです")
	}
}

func TestIsValidRatio(t *testing.T) {
	for _, ratio := range Ratios {
		if !IsValidRatio(ratio) {
			t.Errorf("%q は有効なはずです", ratio)
		}
	}
	if IsValidRatio("21:9") || IsValidRatio("") {
		t.Errorf("未定義の比は拒否されるはずです")
	}
}
