package logic

import (
	"math"

	"github.com/assistantcoach/coach-api/internal/models"
)

// Significance thresholds relative to baseline.
const (
	DropThreshold = 0.15
	RiseThreshold = 0.15
	// MinBaseline guards percent change against near-zero baselines,
	// which would otherwise produce misleading huge percentages.
	MinBaseline = 0.01
)

// overallMetrics is the fixed metric set compared by DetectDeviations.
var overallMetrics = []string{
	models.MetricKills,
	models.MetricDeaths,
	models.MetricAssists,
	models.MetricDamageDealt,
	models.MetricKAST,
	models.MetricRoundsWon,
}

// phaseMetrics is the restricted set compared per phase.
var phaseMetrics = []string{
	models.MetricDamageDealt,
	models.MetricKAST,
	models.MetricKills,
	models.MetricDeaths,
}

// PercentChange returns (recent-baseline)/baseline, or nil when either
// input is absent or the baseline is too small to divide by.
func PercentChange(baseline, recent *float64) *float64 {
	if baseline == nil || recent == nil {
		return nil
	}
	if math.Abs(*baseline) < MinBaseline {
		return nil
	}
	pct := (*recent - *baseline) / *baseline
	return &pct
}

// DetectDeviations compares baseline vs recent aggregates and flags
// significant drops and rises. Deaths have inverted polarity: deaths
// going up is a drop in performance. At most one deviation is emitted
// per metric.
func DetectDeviations(c *models.BaselineVsRecent) []models.Deviation {
	deviations := []models.Deviation{}
	if c == nil {
		return deviations
	}
	for _, m := range overallMetrics {
		b := c.Baseline.Metric(m)
		r := c.Recent.Metric(m)
		pct := PercentChange(&b, &r)
		if pct == nil {
			continue
		}
		higherIsBetter := m != models.MetricDeaths
		var significantDrop, significantRise bool
		if higherIsBetter {
			significantDrop = *pct <= -DropThreshold
			significantRise = *pct >= RiseThreshold
		} else {
			significantDrop = *pct >= RiseThreshold
			significantRise = *pct <= -DropThreshold
		}
		if !significantDrop && !significantRise {
			continue
		}
		direction := models.DirectionRise
		if significantDrop {
			direction = models.DirectionDrop
		}
		deviations = append(deviations, models.Deviation{
			Metric:    m,
			Baseline:  round4(b),
			Recent:    round4(r),
			PctChange: round4(*pct),
			Direction: direction,
		})
	}
	return deviations
}

// PhaseDeviations flags phase-level negative outcomes only: a drop in a
// higher-is-better metric, or deaths rising. Positive phase swings are
// intentionally not reported.
func PhaseDeviations(c *models.BaselineVsRecent) []models.PhaseDeviation {
	out := []models.PhaseDeviation{}
	if c == nil {
		return out
	}
	for _, phase := range models.Phases {
		bAgg, bOK := c.BaselineByPhase[phase]
		rAgg, rOK := c.RecentByPhase[phase]
		if !bOK && !rOK {
			continue
		}
		for _, m := range phaseMetrics {
			// A missing side defaults to 0 so that a phase dropping out
			// of recent play still registers against a real baseline.
			var bv, rv float64
			if bOK {
				bv = bAgg.Metric(m)
			}
			if rOK {
				rv = rAgg.Metric(m)
			}
			pct := PercentChange(&bv, &rv)
			if pct == nil {
				continue
			}
			higherIsBetter := m != models.MetricDeaths
			var direction models.Direction
			switch {
			case higherIsBetter && *pct <= -DropThreshold:
				direction = models.DirectionDrop
			case !higherIsBetter && *pct >= RiseThreshold:
				direction = models.DirectionRise
			default:
				continue
			}
			out = append(out, models.PhaseDeviation{
				Phase:     phase,
				Metric:    m,
				Baseline:  round4(bv),
				Recent:    round4(rv),
				PctChange: round4(*pct),
				Direction: direction,
			})
		}
	}
	return out
}

// DetectTrend classifies a chronological series by comparing the mean
// of its first half against its second half. The comparison uses a
// scale-aware deadband so tiny wobbles read as stable.
func DetectTrend(series []float64) models.TrendLabel {
	if len(series) < 2 {
		return models.TrendUnknown
	}
	half := len(series) / 2
	first := mean(series[:half])
	second := mean(series[half:])
	if math.Abs(second-first) < MinBaseline*(math.Abs(first)+1) {
		return models.TrendStable
	}
	if second < first {
		return models.TrendDeclining
	}
	return models.TrendImproving
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
