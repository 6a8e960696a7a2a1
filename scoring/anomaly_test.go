package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStat(t *testing.T) {
	assert.Equal(t, Stat{}, ComputeStat(nil))
	assert.Equal(t, Stat{N: 1, Mean: 2}, ComputeStat([]float64{2}))
	assert.Equal(t, Stat{N: 3, Mean: 8, Stdev: 0}, ComputeStat([]float64{8, 8, 8}))

	stat := ComputeStat([]float64{4, 6})
	assert.Equal(t, 2, stat.N)
	assert.Equal(t, 5.0, stat.Mean)
	assert.InDelta(t, 1.4142, stat.Stdev, 0.0001)
}

func TestAnnotateWithoutPeers(t *testing.T) {
	annotation := Annotate(7, nil, 10, DefaultAnomalyConfig())

	assert.Equal(t, 0, annotation.PeerCount)
	assert.Nil(t, annotation.PeerMean)
	assert.Nil(t, annotation.Delta)
	assert.Nil(t, annotation.Z)
	assert.False(t, annotation.IsAnomaly)
}

func TestAnnotateFlagsLargeZScore(t *testing.T) {
	config := DefaultAnomalyConfig()

	flagged := Annotate(8, []float64{4, 6}, 10, config)
	assert.NotNil(t, flagged.Z)
	assert.InDelta(t, 2.1213, *flagged.Z, 0.0001)
	assert.True(t, flagged.IsAnomaly)

	unflagged := Annotate(7, []float64{4, 6}, 10, config)
	assert.NotNil(t, unflagged.Z)
	assert.InDelta(t, 1.4142, *unflagged.Z, 0.0001)
	assert.False(t, unflagged.IsAnomaly)
}

func TestAnnotateFallsBackToAbsoluteThreshold(t *testing.T) {
	// Peers agree exactly, so no z can be computed and the flag depends on
	// the delta against 30% of the max score.
	annotation := Annotate(2, []float64{8, 8, 8}, 10, DefaultAnomalyConfig())

	assert.Equal(t, 3, annotation.PeerCount)
	assert.Equal(t, 8.0, *annotation.PeerMean)
	assert.Equal(t, 0.0, *annotation.PeerStdev)
	assert.Equal(t, -6.0, *annotation.Delta)
	assert.Nil(t, annotation.Z)
	assert.True(t, annotation.IsAnomaly)

	mild := Annotate(6, []float64{8, 8, 8}, 10, DefaultAnomalyConfig())
	assert.Equal(t, -2.0, *mild.Delta)
	assert.False(t, mild.IsAnomaly)
}

func TestAnnotateSinglePeer(t *testing.T) {
	// One peer gives a mean but no spread, so the absolute threshold applies
	// and the stdev stays undefined.
	annotation := Annotate(1, []float64{9}, 10, DefaultAnomalyConfig())

	assert.Equal(t, 1, annotation.PeerCount)
	assert.Nil(t, annotation.PeerStdev)
	assert.Nil(t, annotation.Z)
	assert.Equal(t, -8.0, *annotation.Delta)
	assert.True(t, annotation.IsAnomaly)
}

func TestAnnotateIsOrderIndependent(t *testing.T) {
	config := DefaultAnomalyConfig()
	peers := []float64{8, 3, 5, 9, 1}
	shuffled := []float64{5, 9, 1, 8, 3}

	assert.Equal(t, Annotate(2, peers, 10, config), Annotate(2, shuffled, 10, config))
}

func TestAnnotateRespectsConfiguredThresholds(t *testing.T) {
	config := AnomalyConfig{ZThreshold: 1.0, AbsFraction: 0.1}

	assert.True(t, Annotate(7, []float64{4, 6}, 10, config).IsAnomaly)
	assert.True(t, Annotate(6.5, []float64{8, 8}, 10, config).IsAnomaly)
	assert.False(t, Annotate(7.5, []float64{8, 8}, 10, config).IsAnomaly)
}
