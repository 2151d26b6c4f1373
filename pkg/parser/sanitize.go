package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// AI が返す「JSONのつもり」のテキストに対する修復用パターン群です。
var (
	lineCommentRe   = regexp.MustCompile(`(?m)(^|\s)//[^\n]*`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	fractionRe      = regexp.MustCompile(`("amount"\s*:\s*)(\d+)\s*/\s*(\d+)`)
	looseValueRe    = regexp.MustCompile(`("(?:amount|unit|notes)"\s*:\s*)([^"\s,{\[][^,}\]\n]*)`)
)

// commonFractions は台所でよく使う分数の定訳です。それ以外は小数第2位で割ります。
var commonFractions = map[string]string{
	"1/2": "0.5",
	"1/3": "0.33",
	"2/3": "0.67",
	"1/4": "0.25",
	"3/4": "0.75",
}

// Sanitize は生成モデルの生テキストを構文的に解析可能な JSON 文字列へ近づけます。
// 失敗という概念はなく、常にベストエフォートで変換後の文字列を返します。
// 変換は順序依存です（後段は前段の正規化を前提にしています）。
//
//  1. コードフェンス（```json 等）の除去
//  2. 最初の '{' から最後の '}' までへの切り詰め
//  3. 行コメント・ブロックコメントの除去
//  4. '}' ']' 直前の余分なカンマの除去
//  5. amount の分数リテラル（1/2 等）の小数化
//  6. amount / unit / notes の裸の値のクォート
//
// コメント除去は文字列中の "//" を巻き込み得るヒューリスティックです。
// 行頭または空白の直後に限定しているため URL の "://" は生き残りますが、
// それ以上の特別扱いはしない方針です（既知の制限）。
func Sanitize(raw string) string {
	s := stripFence(strings.TrimSpace(raw))
	s = clipBraces(s)
	s = lineCommentRe.ReplaceAllString(s, "$1")
	s = blockCommentRe.ReplaceAllString(s, "")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = rewriteFractions(s)
	s = quoteLooseValues(s)
	return s
}

// stripFence は先頭のフェンス行（言語タグの有無は問わない）と末尾のフェンスを外します。
func stripFence(s string) string {
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// clipBraces は最初の '{' と最後の '}' に挟まれた部分だけを残します。
// 前後の説明文（「こちらがレシピです」等）を落とすための処置です。
func clipBraces(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// rewriteFractions は "amount": 1/2 のような分数を JSON で許される小数に書き換えます。
func rewriteFractions(s string) string {
	return fractionRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := fractionRe.FindStringSubmatch(m)
		num, errN := strconv.Atoi(parts[2])
		den, errD := strconv.Atoi(parts[3])
		if errN != nil || errD != nil || den == 0 {
			// 0除算などは書き換えず、後段のパーサに委ねます。
			return m
		}
		frac := parts[2] + "/" + parts[3]
		if lit, ok := commonFractions[frac]; ok {
			return parts[1] + lit
		}
		return parts[1] + strconv.FormatFloat(float64(num)/float64(den), 'f', 2, 64)
	})
}

// quoteLooseValues は amount / unit / notes に限り、クォートも数値でもない
// 裸の値を文字列として包みます。リテラル null だけは JSON の null として通します。
func quoteLooseValues(s string) string {
	return looseValueRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := looseValueRe.FindStringSubmatch(m)
		token := strings.TrimRight(parts[2], " \t")
		if token == "null" {
			return parts[1] + "null"
		}
		c := token[0]
		if (c >= '0' && c <= '9') || c == '-' {
			return m
		}
		escaped := strings.ReplaceAll(token, `"`, `\"`)
		return parts[1] + `"` + escaped + `"`
	})
}
