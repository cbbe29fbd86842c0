package decay

import "math"

// Decay severity tiers and the recommendations that ship with them.
const (
	LevelSevere    = "SEVERE ALPHA DECAY"
	LevelModerate  = "MODERATE ALPHA DECAY"
	LevelMild      = "MILD ALPHA DECAY"
	LevelSlight    = "SLIGHT DETERIORATION"
	LevelStable    = "STABLE/IMPROVING"
)

// ComponentScores breaks the composite down for display.
type ComponentScores struct {
	PerformanceDeterioration float64 `json:"performance_deterioration"`
	NegativeTrend            float64 `json:"negative_trend"`
	RegimeChange             float64 `json:"regime_change"`
	VolatilityIncrease       float64 `json:"volatility_increase"`
}

// ScoreResult is the composite alpha-decay assessment. Higher scores mean
// more severe decay. The individual components clamp to fixed maxima
// (40+20+20 performance, 30 trend, 20 regime, 10 volatility) but the sum
// itself is intentionally left unclamped: headroom above 100 signals
// every detector firing at once.
type ScoreResult struct {
	AlphaDecayScore float64         `json:"alpha_decay_score"`
	DecayLevel      string          `json:"decay_level"`
	Recommendation  string          `json:"recommendation"`
	ComponentScores ComponentScores `json:"component_scores"`
}

// significanceMultiplier scales the trend component by how statistically
// trustworthy the fitted slope is.
var significanceMultiplier = map[string]float64{
	SignificanceHigh:     1.0,
	SignificanceNormal:   0.7,
	SignificanceMarginal: 0.4,
	SignificanceNone:     0.1,
}

// Score composes the rolling, trend, regime, and volatility detectors
// into a single decay score. If any detector reports insufficient data
// the whole score does: partial scoring would silently change the
// meaning of the thresholds.
func (a *Analyzer) Score() (ScoreResult, error) {
	rolling, err := a.RollingPerformance()
	if err != nil {
		return ScoreResult{}, err
	}
	trends, err := a.Trends()
	if err != nil {
		return ScoreResult{}, err
	}
	regime, err := a.Regime()
	if err != nil {
		return ScoreResult{}, err
	}
	volatility, err := a.Volatility()
	if err != nil {
		return ScoreResult{}, err
	}

	score := 0.0

	// Recent performance vs historical, read off the 20-session window.
	if perf, ok := rolling["20_session"]; ok {
		score += clamp(-perf.PLDeterioration, 0, 40)
		score += clamp(-perf.SharpeDeterioration/2, 0, 20)
		score += clamp(-perf.WinRateDeterioration, 0, 20)
	}

	// Negative profit/loss trend, weighted by fit strength and
	// statistical significance.
	if trend, ok := trends["profit_loss"]; ok && trend.TrendDirection == TrendDeteriorating {
		mult, ok := significanceMultiplier[trend.Significance]
		if !ok {
			mult = 0.1
		}
		score += trend.TrendStrength * 30 * mult
	}

	// Regime flip to poor performance is a flat penalty.
	if regime.CurrentRegime == RegimePoor {
		score += 20
	}

	// Volatility expansion beyond 1.5x history.
	if volatility.VolatilityRegime == VolatilityHigh {
		score += clamp((volatility.VolatilityRatio-1)*10, 0, 10)
	}

	level, recommendation := classifyDecay(score)
	return ScoreResult{
		AlphaDecayScore: score,
		DecayLevel:      level,
		Recommendation:  recommendation,
		ComponentScores: ComponentScores{
			PerformanceDeterioration: math.Min(80, score*0.4),
			NegativeTrend:            math.Min(30, score*0.3),
			RegimeChange:             regimePenalty(regime.CurrentRegime),
			VolatilityIncrease:       math.Min(10, score*0.1),
		},
	}, nil
}

func regimePenalty(regime string) float64 {
	if regime == RegimePoor {
		return 20
	}
	return 0
}

func classifyDecay(score float64) (level, recommendation string) {
	switch {
	case score >= 70:
		return LevelSevere, "STOP PLAYING - Your edge has significantly deteriorated"
	case score >= 50:
		return LevelModerate, "REDUCE STAKES - Review strategy and take a break"
	case score >= 30:
		return LevelMild, "CAUTION - Monitor closely and consider strategy review"
	case score >= 15:
		return LevelSlight, "WATCH - Some performance decline detected"
	default:
		return LevelStable, "CONTINUE - Performance remains strong"
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
