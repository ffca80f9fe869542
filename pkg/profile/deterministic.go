package profile

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// 属性選択に使う固定語彙。ハッシュ値の剰余で添字が決まるため、
// 並び順や要素数の変更は既存ロケーターのプロファイルを変えてしまいます。
var (
	eyeColors           = []string{"brown", "blue", "green", "hazel", "gray", "amber"}
	hairColors          = []string{"black", "brown", "blonde", "red", "silver", "chestnut"}
	skinTones           = []string{"fair", "light", "medium", "tan", "deep"}
	faceShapes          = []string{"round", "oval", "heart-shaped", "square"}
	ageBrackets         = []string{"child", "teenager", "young adult", "adult"}
	genderPresentations = []string{"feminine", "masculine", "androgynous"}

	artStyles = []domain.ArtStyle{
		domain.ArtStyleRealistic,
		domain.ArtStyleAnime,
		domain.ArtStyleCartoon,
		domain.ArtStyleManga,
	}

	paletteColors = []string{
		"#E63946", "#F1FAEE", "#A8DADC", "#457B9D", "#1D3557", "#FFB703",
		"#FB8500", "#8ECAE6", "#219EBC", "#023047", "#80ED99", "#57CC99",
	}
)

// paletteSize は ColorPalette の固定長です（仕様上は3色以上）。
const paletteSize = 4

// LocatorHash は画像ロケーターの FNV-1a 32bit ハッシュを返します。
// プロファイルの全属性と埋め込みベクトルはこの値だけから導出されます。
func LocatorHash(imageLocator string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(imageLocator))
	return h.Sum32()
}

// lcgNext は線形合同法で次の疑似乱数値を返します。
// フィクスチャを言語非依存で再現できるよう、係数は 1664525 / 1013904223 に固定しています。
func lcgNext(x uint32) uint32 {
	return x*1664525 + 1013904223
}

// deterministicProfile はロケーターのみからプロファイルを構築します。
// 同じロケーターに対しては常に同一の結果を返す純粋関数です。
func deterministicProfile(imageLocator string) *domain.CharacterProfile {
	seed := LocatorHash(imageLocator)

	x := seed
	pick := func(n int) int {
		x = lcgNext(x)
		return int(x % uint32(n))
	}
	frac := func() float64 {
		x = lcgNext(x)
		return float64(x%10001) / 10000
	}

	features := domain.FacialFeatures{
		EyeColor:           eyeColors[pick(len(eyeColors))],
		HairColor:          hairColors[pick(len(hairColors))],
		SkinTone:           skinTones[pick(len(skinTones))],
		FaceShape:          faceShapes[pick(len(faceShapes))],
		AgeBracket:         ageBrackets[pick(len(ageBrackets))],
		GenderPresentation: genderPresentations[pick(len(genderPresentations))],
	}

	style := artStyles[pick(len(artStyles))]

	// ストライド3で巡回させ、同一パレット内の重複を避けます。
	palette := make([]string, 0, paletteSize)
	start := pick(len(paletteColors))
	for i := 0; i < paletteSize; i++ {
		palette = append(palette, paletteColors[(start+i*3)%len(paletteColors)])
	}

	personality := domain.PersonalityScores{
		Confidence:   frac(),
		Friendliness: frac(),
		Intelligence: frac(),
		Energy:       frac(),
	}

	return &domain.CharacterProfile{
		CharacterID:     fmt.Sprintf("char-%08x", seed),
		ImageLocator:    imageLocator,
		FacialFeatures:  features,
		ArtStyle:        style,
		ColorPalette:    palette,
		Personality:     personality,
		VisualEmbedding: deterministicEmbedding(seed),
	}
}

// deterministicEmbedding はシードから固定長の埋め込みベクトルを生成します。
// 真の類似度計算は行わないため、各要素は [-1,1] に正規化した疑似乱数列で十分です。
func deterministicEmbedding(seed uint32) []float64 {
	embedding := make([]float64, domain.EmbeddingSize)
	x := seed
	for i := range embedding {
		x = lcgNext(x)
		embedding[i] = float64(x)/float64(math.MaxUint32)*2 - 1
	}
	return embedding
}
