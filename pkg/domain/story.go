package domain

// SourceTier は画像がフォールバック連鎖のどの段で生成されたかを表します。
// ロケーターが存在することと real 段が成功したことは同値ではないため、
// 消費側は必ずこの値で判断します。
type SourceTier string

const (
	TierReal      SourceTier = "real"
	TierSimulated SourceTier = "simulated"
	TierFallback  SourceTier = "fallback"
)

// MaxTargetOccurrenceDisplay は語彙ターゲットの表示上の出現回数上限です。
const MaxTargetOccurrenceDisplay = 2

// GeneratedImageResult は1ページ分の画像生成結果とそのメタデータです。
type GeneratedImageResult struct {
	Prompt           string     `json:"prompt"`
	ImageLocator     string     `json:"image_locator"`
	ConsistencyScore float64    `json:"consistency_score"`
	GenerationTimeMs int64      `json:"generation_time_ms"`
	SourceTier       SourceTier `json:"source_tier"`
}

// StoryPage は組み立て済みストーリーの1ページです。
// Text には語彙ターゲットを示す **強調** マーカーが残る場合があります。
type StoryPage struct {
	PageNumber     int                  `json:"page_number"`
	Text           string               `json:"text"`
	GeneratedImage GeneratedImageResult `json:"generated_image"`
}

// VocabularyTarget は学習対象の語とその出現回数（表示上限あり）の組です。
type VocabularyTarget struct {
	Lemma           string `json:"lemma"`
	OccurrenceCount int    `json:"occurrence_count"`
}

// StorySettings は作成リクエスト時点の設定のスナップショットです。
type StorySettings struct {
	WordsToInclude    int    `json:"words_to_include"`
	TranslationLocale string `json:"translation_locale"`
	GuidanceText      string `json:"guidance_text,omitempty"`
	StyleImageLocator string `json:"style_image_locator,omitempty"`
}

// Story は組み立て済みの絵本ストーリー全体です。
// StoryAssembler が一度だけ生成し、以後は変更されません。
type Story struct {
	StoryID  string             `json:"story_id"`
	Title    string             `json:"title"`
	Pages    []StoryPage        `json:"pages"`
	Targets  []VocabularyTarget `json:"targets"`
	Settings StorySettings      `json:"settings"`
}
