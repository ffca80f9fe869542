package domain

// ArcPosition は物語全体の中でそのページが占める局面を表します。
type ArcPosition string

const (
	ArcBeginning  ArcPosition = "beginning"
	ArcRising     ArcPosition = "rising"
	ArcClimax     ArcPosition = "climax"
	ArcFalling    ArcPosition = "falling"
	ArcResolution ArcPosition = "resolution"
)

// SceneDescriptor は1ページ分のテキストとページ位置から抽出された場面情報です。
// 抽出は純粋関数であり、同じ入力からは常に同じ記述が得られます。
type SceneDescriptor struct {
	Action        string      `json:"action"`
	Setting       string      `json:"setting"`
	LightingMood  string      `json:"lighting_mood"`
	EmotionalTone string      `json:"emotional_tone"`
	ArcPosition   ArcPosition `json:"arc_position"`
}

// ArcPositionFor はページ位置の比率 pageIndex/totalPages を固定の境界値に当てはめ、
// 物語上の局面を返します。境界は [0,0.2) beginning / [0.2,0.6) rising /
// [0.6,0.7) climax / [0.7,0.9) falling / [0.9,1.0] resolution です。
func ArcPositionFor(pageIndex, totalPages int) ArcPosition {
	if totalPages <= 0 {
		return ArcBeginning
	}

	ratio := float64(pageIndex) / float64(totalPages)
	switch {
	case ratio < 0.2:
		return ArcBeginning
	case ratio < 0.6:
		return ArcRising
	case ratio < 0.7:
		return ArcClimax
	case ratio < 0.9:
		return ArcFalling
	default:
		return ArcResolution
	}
}
