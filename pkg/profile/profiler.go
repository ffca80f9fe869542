package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Profiler は参照画像ロケーターから安定したキャラクター設定を導出します。
// プロファイルはロケーターごとに一度だけ構築され、以後は変更されません。
type Profiler struct {
	analyzer VisionAnalyzer // nil の場合は決定論的プロファイルのみで動作します

	mu       sync.RWMutex
	profiles map[string]*domain.CharacterProfile
	group    singleflight.Group
}

// NewProfiler は新しい Profiler を生成します。analyzer は省略可能（nil許容）です。
func NewProfiler(analyzer VisionAnalyzer) *Profiler {
	return &Profiler{
		analyzer: analyzer,
		profiles: make(map[string]*domain.CharacterProfile),
	}
}

// Profile はロケーターに対応するプロファイルを返します。
// 同じロケーターからは常に同じ CharacterID と埋め込みが得られ、
// 視覚バックエンドの失敗は決定論的プロファイルで静かに吸収されます。
// エラーになるのはロケーターが空の場合だけです。
func (p *Profiler) Profile(ctx context.Context, imageLocator string) (*domain.CharacterProfile, error) {
	if strings.TrimSpace(imageLocator) == "" {
		return nil, fmt.Errorf("参照画像のロケーターが空です")
	}

	// RLock でキャッシュを素早く確認
	p.mu.RLock()
	cached, ok := p.profiles[imageLocator]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	val, err, _ := p.group.Do(imageLocator, func() (interface{}, error) {
		// singleflight 待機中に他のゴルーチンが構築を終えている可能性があるため再確認
		p.mu.RLock()
		existing, ok := p.profiles[imageLocator]
		p.mu.RUnlock()
		if ok {
			return existing, nil
		}

		built := p.build(ctx, imageLocator)

		p.mu.Lock()
		p.profiles[imageLocator] = built
		p.mu.Unlock()

		return built, nil
	})
	if err != nil {
		return nil, err
	}

	prof, ok := val.(*domain.CharacterProfile)
	if !ok {
		return nil, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return prof, nil
}

// build は決定論的プロファイルを構築し、可能なら視覚解析の結果を重ねます。
func (p *Profiler) build(ctx context.Context, imageLocator string) *domain.CharacterProfile {
	prof := deterministicProfile(imageLocator)

	if p.analyzer == nil {
		return prof
	}

	analysis, err := p.analyzer.AnalyzeCharacter(ctx, imageLocator)
	if err != nil {
		// 解析失敗は呼び出し元に伝播させず、決定論的な既定値に劣化させます。
		slog.Warn("視覚解析に失敗したため決定論的プロファイルを使用します",
			"locator", imageLocator, "error", err)
		return prof
	}

	applyAnalysis(prof, analysis)
	return prof
}

// applyAnalysis は解析結果の外見属性・画風・説明文をプロファイルに上書きします。
// CharacterID と VisualEmbedding はロケーター由来の値を維持します。
func applyAnalysis(prof *domain.CharacterProfile, analysis *VisionAnalysis) {
	if analysis == nil {
		return
	}

	if analysis.Description != "" {
		prof.Description = analysis.Description
	}

	f := analysis.FacialFeatures
	if f.EyeColor != "" {
		prof.FacialFeatures.EyeColor = f.EyeColor
	}
	if f.HairColor != "" {
		prof.FacialFeatures.HairColor = f.HairColor
	}
	if f.SkinTone != "" {
		prof.FacialFeatures.SkinTone = f.SkinTone
	}
	if f.FaceShape != "" {
		prof.FacialFeatures.FaceShape = f.FaceShape
	}
	if f.AgeBracket != "" {
		prof.FacialFeatures.AgeBracket = f.AgeBracket
	}
	if f.GenderPresentation != "" {
		prof.FacialFeatures.GenderPresentation = f.GenderPresentation
	}

	switch analysis.ArtStyle {
	case domain.ArtStyleRealistic, domain.ArtStyleAnime, domain.ArtStyleCartoon, domain.ArtStyleManga:
		prof.ArtStyle = analysis.ArtStyle
	}
}
