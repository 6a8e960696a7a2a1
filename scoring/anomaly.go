package scoring

import (
	"math"
	"sort"
)

// Stat summarizes one comparison set of peer scores. Stdev is the sample
// standard deviation and stays 0 for fewer than two values.
type Stat struct {
	N     int
	Mean  float64
	Stdev float64
}

func ComputeStat(values []float64) Stat {
	n := len(values)
	if n == 0 {
		return Stat{}
	}
	// Summing in a fixed order keeps the result independent of input order.
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)
	if n < 2 {
		return Stat{N: n, Mean: mean}
	}
	variance := 0.0
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	return Stat{N: n, Mean: mean, Stdev: math.Sqrt(variance / float64(n-1))}
}

type AnomalyConfig struct {
	// ZThreshold flags a score when |z| reaches it and peers disagree.
	ZThreshold float64
	// AbsFraction of the criterion's max score flags a score when peers
	// agree exactly and no z can be computed.
	AbsFraction float64
}

func DefaultAnomalyConfig() AnomalyConfig {
	return AnomalyConfig{ZThreshold: 2.0, AbsFraction: 0.3}
}

// Annotation carries the consensus signals for one score. Pointer fields stay
// nil when the underlying quantity is undefined for the peer set.
type Annotation struct {
	PeerCount int
	PeerMean  *float64
	PeerStdev *float64
	Delta     *float64
	Z         *float64
	IsAnomaly bool
}

// Annotate compares a score value against its peers' values for the same
// target and criterion. peers must exclude the annotated score itself; with
// no peers there is no consensus to deviate from and nothing is flagged.
func Annotate(value float64, peers []float64, maxScore float64, config AnomalyConfig) Annotation {
	stat := ComputeStat(peers)
	if stat.N == 0 {
		return Annotation{}
	}
	delta := value - stat.Mean
	annotation := Annotation{
		PeerCount: stat.N,
		PeerMean:  &stat.Mean,
		Delta:     &delta,
	}
	if stat.N >= 2 {
		annotation.PeerStdev = &stat.Stdev
	}
	if stat.Stdev > 0 {
		z := delta / stat.Stdev
		annotation.Z = &z
		annotation.IsAnomaly = math.Abs(z) >= config.ZThreshold
	} else {
		annotation.IsAnomaly = math.Abs(delta) >= config.AbsFraction*maxScore
	}
	return annotation
}
