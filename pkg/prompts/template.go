package prompts

// DefaultQualitySuffix は全ページ共通で適用する画風・品質の既定サフィックスです。
const DefaultQualitySuffix = "children's storybook illustration, soft painterly rendering, warm colors, clean composition, high quality, ultra-detailed"

// ConsistencySuffix は下流の生成器にページ間のキャラクター同一性維持を指示する固定文です。
// 全ページのプロンプト末尾に必ず付与されます。
const ConsistencySuffix = "keep the exact same character identity, face, hair and outfit consistent across every page of this story"

// DefaultNegativePrompt は実生成段で併用するネガティブプロンプトです。
// 吹き出しや文字、崩れた描写を排除します。
const DefaultNegativePrompt = "speech bubble, dialogue balloon, text, letters, words, watermark, signature, low quality, distorted, bad anatomy, extra limbs"
