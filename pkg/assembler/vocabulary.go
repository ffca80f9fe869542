package assembler

import (
	"regexp"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/scene"
)

// ExtractTargets は強調マーカー付きの語を初出順に集め、語彙ターゲットを構築します。
// 出現回数は全ページの平文に対する単語境界・大文字小文字無視の照合で数え、
// 表示上の上限 domain.MaxTargetOccurrenceDisplay で打ち切ります。
// limit が正の場合、ターゲット数は先頭から limit 件に制限されます。
func ExtractTargets(pages []domain.StoryPage, limit int) []domain.VocabularyTarget {
	lemmas := collectLemmas(pages)
	if limit > 0 && len(lemmas) > limit {
		lemmas = lemmas[:limit]
	}
	if len(lemmas) == 0 {
		return nil
	}

	var plainTexts []string
	for _, page := range pages {
		plainTexts = append(plainTexts, scene.StripEmphasis(page.Text))
	}
	corpus := strings.Join(plainTexts, "\n")

	targets := make([]domain.VocabularyTarget, 0, len(lemmas))
	for _, lemma := range lemmas {
		count := countOccurrences(corpus, lemma)
		if count > domain.MaxTargetOccurrenceDisplay {
			count = domain.MaxTargetOccurrenceDisplay
		}
		targets = append(targets, domain.VocabularyTarget{
			Lemma:           lemma,
			OccurrenceCount: count,
		})
	}
	return targets
}

// collectLemmas は全ページの **強調** 語を初出順に返します。重複は小文字化して除外します。
func collectLemmas(pages []domain.StoryPage) []string {
	seen := make(map[string]struct{})
	var lemmas []string

	for _, page := range pages {
		for _, match := range scene.EmphasisRegex.FindAllStringSubmatch(page.Text, -1) {
			lemma := strings.TrimSpace(match[1])
			if lemma == "" {
				continue
			}
			key := strings.ToLower(lemma)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas
}

func countOccurrences(corpus, lemma string) int {
	re, err := lemmaPattern(lemma)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(corpus, -1))
}

// lemmaPattern は単語境界付きの照合パターンを返します。
// "ready" の中の "read" のような部分一致を数えないための境界指定です。
func lemmaPattern(lemma string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(lemma) + `\b`)
}
