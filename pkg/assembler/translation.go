package assembler

import (
	"regexp"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/vocab"
)

// TranslationRequested はロケール指定が対訳の挿入を要求しているかを返します。
// 空文字と "none" は「挿入しない」を意味します。
func TranslationRequested(locale string) bool {
	trimmed := strings.TrimSpace(locale)
	return trimmed != "" && !strings.EqualFold(trimmed, "none")
}

// InjectTranslations は各ターゲット語の初出直後に対訳を括弧書きで挿入します。
// 挿入は語ごとにストーリー全体で一度だけ行い、挿入済みの箇所には重ねません。
// 辞書に訳語がない語はそのまま残します。
func InjectTranslations(pages []domain.StoryPage, targets []domain.VocabularyTarget, locale string) {
	if !TranslationRequested(locale) {
		return
	}

	for _, target := range targets {
		translation, ok := vocab.Lookup(locale, target.Lemma)
		if !ok {
			continue
		}
		annotateFirstOccurrence(pages, target.Lemma, translation)
	}
}

// annotateFirstOccurrence はページを先頭から走査し、語の初出直後に訳語を挿入します。
// 強調マーカー付きの出現では閉じマーカーの後ろに挿入します。
func annotateFirstOccurrence(pages []domain.StoryPage, lemma, translation string) {
	pattern := injectionPattern(lemma)
	suffix := " (" + translation + ")"

	for i := range pages {
		loc := pattern.FindStringIndex(pages[i].Text)
		if loc == nil {
			continue
		}

		rest := pages[i].Text[loc[1]:]
		if strings.HasPrefix(rest, suffix) {
			return
		}

		pages[i].Text = pages[i].Text[:loc[1]] + suffix + rest
		return
	}
}

func injectionPattern(lemma string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(lemma)
	return regexp.MustCompile(`(?i)\*\*` + quoted + `\*\*|\b` + quoted + `\b`)
}
