package generator

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"
)

// InitializeImageGenerator は gemini-image-kit のジェネレーターを初期化します。
// アップロード済み参照画像の URI はキャッシュされ、ページごとの再アップロードを防ぎます。
func InitializeImageGenerator(aiClient gemini.GenerativeModel, reader remoteio.InputReader, httpClient httpkit.ClientInterface, model string) (imagegen.ImageGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := imagegen.NewGeminiImageCore(aiClient, reader, httpClient, imgCache, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagegen.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return imgGen, nil
}

// InitializeRealTier は実生成段を構築します。
// aiClient が nil（APIキー未設定）の場合は nil を返し、連鎖は simulated 段からになります。
func InitializeRealTier(aiClient gemini.GenerativeModel, reader remoteio.InputReader, writer remoteio.OutputWriter, httpClient httpkit.ClientInterface, model, imageDir string, rateInterval time.Duration) (*RealTier, error) {
	if aiClient == nil {
		return nil, nil
	}

	imgGen, err := InitializeImageGenerator(aiClient, reader, httpClient, model)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if rateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(rateInterval), 2)
	}

	return NewRealTier(imgGen, writer, limiter, imageDir), nil
}
