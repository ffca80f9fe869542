// Package vocab は学習語彙の対訳辞書を提供します。
// 辞書はバイナリに埋め込まれ、実行時の外部依存はありません。
package vocab

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed translations.json
var lexiconFS embed.FS

// lexicon はロケール -> 見出し語 -> 訳語 の二段マップです。
type lexicon map[string]map[string]string

var (
	loadOnce   sync.Once
	loadedLex  lexicon
	loadingErr error
)

func load() (lexicon, error) {
	loadOnce.Do(func() {
		data, err := lexiconFS.ReadFile("translations.json")
		if err != nil {
			loadingErr = fmt.Errorf("対訳辞書の読み込みに失敗しました: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loadedLex); err != nil {
			loadingErr = fmt.Errorf("対訳辞書の解析に失敗しました: %w", err)
		}
	})
	return loadedLex, loadingErr
}

// Lookup は見出し語のロケール別訳語を返します。
// 見出し語は小文字化して照合します。辞書にない語は ok=false を返します。
func Lookup(locale, lemma string) (string, bool) {
	lex, err := load()
	if err != nil {
		return "", false
	}

	entries, ok := lex[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return "", false
	}

	translation, ok := entries[strings.ToLower(strings.TrimSpace(lemma))]
	return translation, ok
}

// SupportedLocales は辞書が収録しているロケールの一覧を返します。
func SupportedLocales() []string {
	lex, err := load()
	if err != nil {
		return nil
	}

	locales := make([]string, 0, len(lex))
	for locale := range lex {
		locales = append(locales, locale)
	}
	return locales
}
