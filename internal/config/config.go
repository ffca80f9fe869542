package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel              = "gemini-3-flash-preview"
	DefaultImageModel         = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout        = 30 * time.Second
	DefaultPageCount          = 5
	DefaultWordsToInclude     = 5
	DefaultRateLimit          = 30 * time.Second
	DefaultImmediateCacheTTL  = 10 * time.Minute
	DefaultOutputDir          = "output"        // パブリッシャーで使用するデフォルト保存先なのだ
	DefaultLocalImageDir      = "output/images" // 実生成段の画像保存先なのだ
	DefaultIllustrationSuffix = "children's storybook illustration, soft watercolor texture, warm color palette, gentle rounded shapes, high-quality picture book art, consistent character design, masterpiece, high resolution"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID          string
	LocationID         string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiImageModel   string
	IllustrationSuffix string

	Options AssembleOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:          envutil.GetEnv("PROJECT_ID", ""),
		LocationID:         envutil.GetEnv("REGION", ""),
		GeminiAPIKey:       envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:        envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		IllustrationSuffix: envutil.GetEnv("ILLUSTRATION_SUFFIX", DefaultIllustrationSuffix),
	}
	return cfg
}

// AssembleOptions は CLI フラグから渡される実行時のパラメータなのだ。
type AssembleOptions struct {
	// ソース入力関連
	CharacterImage string // --character-image
	StoryFile      string // --story-file
	StoryURL       string // --story-url
	Title          string // --title

	// 組み立て関連
	PageCount         int    // --pages
	WordsToInclude    int    // --words
	TranslationLocale string // --locale
	GuidanceText      string // --guidance
	StyleImage        string // --style-image
	Parallelism       int    // --parallel

	// 出力関連
	OutputDir string // --output-dir

	// AI挙動設定
	AIModel    string // --model: テキスト解析用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
