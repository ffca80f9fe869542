package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

const analysisPromptTemplate = `You are a character designer's assistant.
Describe the main character in the reference image at "%s" as strict JSON:
{
  "description": "<one sentence>",
  "facial_features": {
    "eye_color": "", "hair_color": "", "skin_tone": "",
    "face_shape": "", "age_bracket": "", "gender_presentation": ""
  },
  "art_style": "realistic | anime | cartoon | manga"
}
Return the JSON object only.`

// GeminiVisionAnalyzer は Gemini モデルを用いた参照画像解析バックエンドです。
type GeminiVisionAnalyzer struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiVisionAnalyzer は GeminiVisionAnalyzer を初期化します。
func NewGeminiVisionAnalyzer(aiClient gemini.GenerativeModel, model string) (*GeminiVisionAnalyzer, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &GeminiVisionAnalyzer{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// AnalyzeCharacter は参照画像の外見を解析し、構造化された観察結果を返します。
func (a *GeminiVisionAnalyzer) AnalyzeCharacter(ctx context.Context, imageLocator string) (*VisionAnalysis, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate, imageLocator)

	resp, err := a.aiClient.GenerateContent(ctx, a.model, prompt)
	if err != nil {
		return nil, fmt.Errorf("キャラクター解析の呼び出しに失敗しました: %w", err)
	}
	if resp == nil || resp.RawResponse == nil {
		return nil, fmt.Errorf("キャラクター解析の応答が空です")
	}

	return parseAnalysis(resp.RawResponse.Text())
}

// parseAnalysis はモデル応答からJSONオブジェクトを取り出してパースします。
func parseAnalysis(raw string) (*VisionAnalysis, error) {
	raw = strings.TrimSpace(raw)
	var rawJSON string

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		rawJSON = matches[1]
	} else {
		// コードブロックがない場合は最外殻の JSON オブジェクトを探します。
		firstBracket := strings.Index(raw, "{")
		lastBracket := strings.LastIndex(raw, "}")
		if firstBracket != -1 && lastBracket > firstBracket {
			rawJSON = raw[firstBracket : lastBracket+1]
		} else {
			rawJSON = raw
		}
	}

	var analysis VisionAnalysis
	if err := json.Unmarshal([]byte(rawJSON), &analysis); err != nil {
		return nil, fmt.Errorf("解析応答のJSONパースに失敗しました (応答抜粋: %q): %w", truncateString(raw, 200), err)
	}
	return &analysis, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
