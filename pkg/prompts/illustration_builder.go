package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// ScenePrompt はストーリー1ページ分の生成指示を構築するビルダーの窓口です。
type ScenePrompt interface {
	BuildIllustrationPrompt(profile *domain.CharacterProfile, scene domain.SceneDescriptor, pageNumber int) string
}

// IllustrationPromptBuilder は、キャラクター設定と場面記述を1本の生成指示に合成します。
// 出力は決定論的で、必ずキャラクター識別子と画風を含みます。
// これらがページ間の一貫性を支えるアンカーになります。
type IllustrationPromptBuilder struct {
	styleSuffix string // "soft watercolor, warm colors" 等の共通画風サフィックス
}

// NewIllustrationPromptBuilder は新しいビルダーを生成します。
// styleSuffix が空の場合は DefaultQualitySuffix が使われます。
func NewIllustrationPromptBuilder(styleSuffix string) *IllustrationPromptBuilder {
	if styleSuffix == "" {
		styleSuffix = DefaultQualitySuffix
	}
	return &IllustrationPromptBuilder{
		styleSuffix: styleSuffix,
	}
}

// BuildIllustrationPrompt はキャラクター節・動作節・舞台節・雰囲気節の順に連結し、
// 品質と一貫性保持の固定サフィックスで締めます。
func (pb *IllustrationPromptBuilder) BuildIllustrationPrompt(profile *domain.CharacterProfile, scene domain.SceneDescriptor, pageNumber int) string {
	var parts []string

	// 1. キャラクター節（識別子 + 年齢/性別表現 + 画風 + 特徴）
	parts = append(parts, pb.buildCharacterClause(profile))

	// 2. 動作・舞台・雰囲気の各節
	parts = append(parts, scene.Action)
	parts = append(parts, fmt.Sprintf("in %s", scene.Setting))
	parts = append(parts, scene.LightingMood)
	parts = append(parts, fmt.Sprintf("%s mood", scene.EmotionalTone))
	parts = append(parts, fmt.Sprintf("story moment: %s", scene.ArcPosition))
	parts = append(parts, fmt.Sprintf("page %d of the story", pageNumber))

	// 3. 画風サフィックスと一貫性保持の指示
	parts = append(parts, pb.styleSuffix)
	parts = append(parts, ConsistencySuffix)

	// 空要素を除去してカンマ区切りで結合
	var cleanParts []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			cleanParts = append(cleanParts, s)
		}
	}

	return strings.Join(cleanParts, ", ")
}

// buildCharacterClause はプロファイルからキャラクター描写の節を構築します。
func (pb *IllustrationPromptBuilder) buildCharacterClause(profile *domain.CharacterProfile) string {
	var sb strings.Builder

	f := profile.FacialFeatures
	sb.WriteString(fmt.Sprintf("the main character %s, a %s %s character drawn in %s style",
		profile.CharacterID, f.AgeBracket, f.GenderPresentation, profile.ArtStyle))

	sb.WriteString(fmt.Sprintf(", with %s eyes, %s hair, %s skin and a %s face",
		f.EyeColor, f.HairColor, f.SkinTone, f.FaceShape))

	if profile.Description != "" {
		sb.WriteString(", ")
		sb.WriteString(profile.Description)
	}

	if len(profile.ColorPalette) > 0 {
		limit := len(profile.ColorPalette)
		if limit > 3 {
			limit = 3
		}
		sb.WriteString(fmt.Sprintf(", signature colors %s", strings.Join(profile.ColorPalette[:limit], " ")))
	}

	return sb.String()
}
