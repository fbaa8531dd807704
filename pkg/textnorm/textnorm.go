// Package textnorm 提供用于模糊匹配的文本归一化：小写 + 去音调。
// 例如 "Gà Rán" -> "ga ran"，使不同书写习惯的菜系词可以互相命中。
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold 先做 NFD 分解，剥离所有组合记号（Mn），再重组为 NFC。
var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize 返回小写、去音调后的字符串，用于 contains 类匹配。
// 转换失败时退化为仅小写（宁可放过，不可误杀）。
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	out, _, err := transform.String(fold, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// NormalizeAll 对列表中每个非空元素做 Normalize，并去掉首尾空白。
func NormalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, Normalize(v))
	}
	return out
}
