package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Slug はストレージパスやファイル名に使える識別子を導出します。
// 英語タイトルを優先し、中国語タイトルしか無い場合はハッシュで代替します。
func (d *RecipeDocument) Slug() string {
	if s := slugify(d.TitleEn); s != "" {
		return s
	}

	// CJKタイトルはパスに落とせないため、短いハッシュで安定した識別子を作ります。
	sum := sha256.Sum256([]byte(d.TitleZh))
	return "recipe-" + hex.EncodeToString(sum[:4])
}

// ShotByKey はキーが一致する画像ショットを返します。見つからなければ nil です。
func (d *RecipeDocument) ShotByKey(key string) *ImageShot {
	for i := range d.ImageShots {
		if d.ImageShots[i].Key == key {
			return &d.ImageShots[i]
		}
	}
	return nil
}

// ResolvedShots は URL が解決済みのショットだけを宣言順で返します。
func (d *RecipeDocument) ResolvedShots() []ImageShot {
	resolved := make([]ImageShot, 0, len(d.ImageShots))
	for _, shot := range d.ImageShots {
		if shot.ImageURL != "" {
			resolved = append(resolved, shot)
		}
	}
	return resolved
}

// IsValidIconKey は iconKey が閉じた列挙に含まれるか判定します。
func IsValidIconKey(key string) bool {
	for _, k := range IconKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsValidRatio は ratio が許可されたアスペクト比か判定します。
func IsValidRatio(ratio string) bool {
	for _, r := range Ratios {
		if r == ratio {
			return true
		}
	}
	return false
}

// slugify は英数字以外をハイフンに潰した小文字スラグを返します。
func slugify(s string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
