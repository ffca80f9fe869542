package generator

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// placeholderSet は1カテゴリ分の差し替えアセット群です。
// キーワード照合はリストの並び順で行われ、最初に一致したカテゴリが採用されます。
type placeholderSet struct {
	category string
	keywords []string
	assets   []string
}

// placeholderSets は文脈に応じた差し替え画像の固定カタログです。
// アセットはシード付きURLなので、同じカテゴリ・同じページ番号なら常に同じ画像になります。
var placeholderSets = []placeholderSet{
	{
		category: "reading",
		keywords: []string{"reading", "book"},
		assets: []string{
			"https://picsum.photos/seed/storybook-reading-1/800/600",
			"https://picsum.photos/seed/storybook-reading-2/800/600",
			"https://picsum.photos/seed/storybook-reading-3/800/600",
		},
	},
	{
		category: "writing",
		keywords: []string{"writing", "drawing"},
		assets: []string{
			"https://picsum.photos/seed/storybook-writing-1/800/600",
			"https://picsum.photos/seed/storybook-writing-2/800/600",
		},
	},
	{
		category: "examining",
		keywords: []string{"examining", "looking", "discover"},
		assets: []string{
			"https://picsum.photos/seed/storybook-examining-1/800/600",
			"https://picsum.photos/seed/storybook-examining-2/800/600",
			"https://picsum.photos/seed/storybook-examining-3/800/600",
		},
	},
	{
		category: "speaking",
		keywords: []string{"speaking", "talking"},
		assets: []string{
			"https://picsum.photos/seed/storybook-speaking-1/800/600",
			"https://picsum.photos/seed/storybook-speaking-2/800/600",
		},
	},
	{
		category: "moving",
		keywords: []string{"moving", "running", "walking", "journey"},
		assets: []string{
			"https://picsum.photos/seed/storybook-moving-1/800/600",
			"https://picsum.photos/seed/storybook-moving-2/800/600",
			"https://picsum.photos/seed/storybook-moving-3/800/600",
		},
	},
}

// SimulatedTier は実バックエンドなしで動く決定論的な第2段です。
// 場面の動作節のカテゴリキーワードに応じた差し替え画像を、
// ページ番号の剰余で巡回させながら返します。
type SimulatedTier struct{}

// NewSimulatedTier は SimulatedTier を生成します。
func NewSimulatedTier() *SimulatedTier {
	return &SimulatedTier{}
}

// Name は段名を返します。
func (t *SimulatedTier) Name() string {
	return string(domain.TierSimulated)
}

// TryGenerate は場面の動作節に一致するカテゴリの差し替え画像を返します。
// 同一カテゴリ内の巡回は (pageNumber-1) % len(assets) で決まり、再現可能です。
// どのカテゴリにも一致しない場合はエラーを返し、第3段に委ねます。
func (t *SimulatedTier) TryGenerate(_ context.Context, req GenerationRequest) (*domain.GeneratedImageResult, error) {
	words := wordSet(strings.ToLower(matchSource(req)))

	for _, set := range placeholderSets {
		for _, kw := range set.keywords {
			if _, ok := words[kw]; !ok {
				continue
			}

			idx := (req.PageNumber - 1) % len(set.assets)
			if idx < 0 {
				idx = 0
			}

			return &domain.GeneratedImageResult{
				ImageLocator:     set.assets[idx],
				ConsistencyScore: SimulatedTierScore,
				SourceTier:       domain.TierSimulated,
			}, nil
		}
	}

	return nil, fmt.Errorf("場面に一致する差し替えカテゴリがありません")
}

// matchSource は照合対象のテキストを返します。
// 完成済みプロンプトは末尾の画風サフィックスに "storybook" 等の語を含むため、
// 場面の動作節を照合対象とし、動作が未設定の場合のみプロンプト全体を使います。
func matchSource(req GenerationRequest) string {
	if req.Scene.Action != "" {
		return req.Scene.Action
	}
	return req.Prompt
}

// wordSet は小文字化済みテキストを単語集合に変換します。
// 照合は単語単位で行い、"storybook" が "book" に当たるような部分一致を防ぎます。
func wordSet(lowerText string) map[string]struct{} {
	fields := strings.FieldsFunc(lowerText, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[strings.Trim(f, "'")] = struct{}{}
	}
	return words
}
