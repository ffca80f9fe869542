package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// 各段の固定一貫性スコアです。値は段の信頼度を示す契約であり、動的には変化しません。
const (
	RealTierScore      = 0.95
	SimulatedTierScore = 0.85
	FallbackTierScore  = 0.70
)

// Orchestrator は生成段を固定順で試行するフォールバック連鎖の実行器です。
// どの段の失敗も次の段で吸収されるため、Generate は決してエラーを返しません。
// これがパイプライン全体の中心的な障害処理方針です。
type Orchestrator struct {
	tiers []GenerationTier
}

// NewOrchestrator は指定された段を順に試行するオーケストレーターを生成します。
// 終端の保証のため、段のリストとは独立に固定アセットへの劣化経路を常に持ちます。
func NewOrchestrator(tiers ...GenerationTier) *Orchestrator {
	return &Orchestrator{
		tiers: tiers,
	}
}

// NewDefaultOrchestrator は real → simulated → fallback の標準連鎖を構築します。
// realTier は nil 許容で、その場合は simulated からの開始になります。
func NewDefaultOrchestrator(realTier GenerationTier) *Orchestrator {
	tiers := make([]GenerationTier, 0, 3)
	if realTier != nil {
		tiers = append(tiers, realTier)
	}
	tiers = append(tiers, NewSimulatedTier(), NewFallbackTier())
	return NewOrchestrator(tiers...)
}

// Generate は連鎖の各段を順に試行し、最初に成功した結果を返します。
// 所要時間は常にオーケストレーター入口からの計測値です。
// 全段が失敗しても固定アセットに劣化するため、結果は必ず得られます。
func (o *Orchestrator) Generate(ctx context.Context, req GenerationRequest) *domain.GeneratedImageResult {
	start := time.Now()

	for _, tier := range o.tiers {
		res, err := tier.TryGenerate(ctx, req)
		if err != nil {
			slog.Warn("生成段が失敗したため次の段へフォールバックします",
				"tier", tier.Name(), "page", req.PageNumber, "error", err)
			continue
		}
		if res == nil {
			slog.Warn("生成段が結果を返さなかったため次の段へフォールバックします",
				"tier", tier.Name(), "page", req.PageNumber)
			continue
		}

		res.Prompt = req.Prompt
		res.GenerationTimeMs = time.Since(start).Milliseconds()
		slog.Info("画像生成が完了しました",
			"tier", res.SourceTier, "page", req.PageNumber,
			"score", res.ConsistencyScore, "elapsed_ms", res.GenerationTimeMs)
		return res
	}

	// 連鎖の終端。固定アセットへの劣化であり、ここは失敗し得ません。
	res := fallbackResult()
	res.Prompt = req.Prompt
	res.GenerationTimeMs = time.Since(start).Milliseconds()
	slog.Warn("全段が失敗したため固定アセットに劣化しました", "page", req.PageNumber)
	return res
}
