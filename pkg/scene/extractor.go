package scene

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// EmphasisRegex は語彙ターゲットを示す **強調** マーカーに一致します。
var EmphasisRegex = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// Extractor は1ページ分のテキストから場面記述を抽出します。
// 抽出はページ本文とページ位置のみの純粋関数で、状態を持ちません。
type Extractor struct{}

// NewExtractor は新しい Extractor を生成します。
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract は強調マーカーを外した本文に対して4つの規則リストを独立に適用し、
// ページ位置から物語上の局面を算出して場面記述を返します。
func (e *Extractor) Extract(pageText string, pageIndex, totalPages int) domain.SceneDescriptor {
	plain := strings.ToLower(StripEmphasis(pageText))
	words := tokenize(plain)

	return domain.SceneDescriptor{
		Action:        classify(words, ActionRules, DefaultAction),
		Setting:       classify(words, SettingRules, DefaultSetting),
		LightingMood:  classify(words, LightingMoodRules, DefaultLightingMood),
		EmotionalTone: classify(words, EmotionalToneRules, DefaultEmotionalTone),
		ArcPosition:   domain.ArcPositionFor(pageIndex, totalPages),
	}
}

// StripEmphasis は **強調** マーカーを取り除いた本文を返します。
func StripEmphasis(text string) string {
	return EmphasisRegex.ReplaceAllString(text, "$1")
}

// classify は規則リストを先頭から走査し、最初にキーワードが一致した規則のラベルを返します。
// 一致判定はテキスト中の出現位置ではなくリストの並び順で決まります。
func classify(words map[string]struct{}, rules []Rule, defaultLabel string) string {
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if _, ok := words[kw]; ok {
				return rule.Label
			}
		}
	}
	return defaultLabel
}

// tokenize は小文字化済みの本文を単語集合に変換します。
// 部分文字列の誤一致（"ready" に "read" が当たる等）を防ぐため、単語単位で照合します。
func tokenize(lowerText string) map[string]struct{} {
	fields := strings.FieldsFunc(lowerText, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[strings.Trim(f, "'")] = struct{}{}
	}
	return words
}
