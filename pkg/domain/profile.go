package domain

// ArtStyle は生成イラスト全体に適用する画風の列挙値です。
type ArtStyle string

const (
	ArtStyleRealistic ArtStyle = "realistic"
	ArtStyleAnime     ArtStyle = "anime"
	ArtStyleCartoon   ArtStyle = "cartoon"
	ArtStyleManga     ArtStyle = "manga"
)

// EmbeddingSize は VisualEmbedding の固定長です。
const EmbeddingSize = 512

// FacialFeatures はキャラクターの外見属性を保持します。
// 各フィールドは固定の語彙から選択された短い英語フレーズです。
type FacialFeatures struct {
	EyeColor           string `json:"eye_color"`
	HairColor          string `json:"hair_color"`
	SkinTone           string `json:"skin_tone"`
	FaceShape          string `json:"face_shape"`
	AgeBracket         string `json:"age_bracket"`
	GenderPresentation string `json:"gender_presentation"`
}

// PersonalityScores は [0,1] に正規化された性格傾向のスコアです。
type PersonalityScores struct {
	Confidence   float64 `json:"confidence"`
	Friendliness float64 `json:"friendliness"`
	Intelligence float64 `json:"intelligence"`
	Energy       float64 `json:"energy"`
}

// CharacterProfile は参照画像1枚から導出される安定したキャラクター設定です。
// 同じ画像ロケーターからは常に同じ CharacterID と VisualEmbedding が得られます。
type CharacterProfile struct {
	CharacterID    string         `json:"character_id"`
	ImageLocator   string         `json:"image_locator"`
	Description    string         `json:"description,omitempty"`
	FacialFeatures FacialFeatures `json:"facial_features"`
	ArtStyle       ArtStyle       `json:"art_style"`
	ColorPalette   []string       `json:"color_palette"`
	Personality    PersonalityScores `json:"personality"`

	// VisualEmbedding は再現性確認用の決定論的ベクトル。シリアライズ対象外。
	VisualEmbedding []float64 `json:"-"`
}
