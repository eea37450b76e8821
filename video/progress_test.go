package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhasePercent(t *testing.T) {
	assert.Equal(t, 0, phasePercent(0, 25, 0, 4))
	assert.Equal(t, 6, phasePercent(0, 25, 1, 4))
	assert.Equal(t, 25, phasePercent(0, 25, 4, 4))
	assert.Equal(t, 50, phasePercent(25, 50, 1, 2))
	assert.Equal(t, 25, phasePercent(25, 75, 0, 3))
	assert.Equal(t, 40, phasePercent(40, 10, 3, 0))
}

func TestPhaseWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultPhaseWeights().Validate())
	assert.NoError(t, PhaseWeights{Analysis: 10, Scaling: 85, Combination: 90}.Validate())

	assert.Error(t, PhaseWeights{Analysis: -1, Scaling: 50, Combination: 75}.Validate())
	assert.Error(t, PhaseWeights{Analysis: 50, Scaling: 50, Combination: 10}.Validate())
	assert.Error(t, PhaseWeights{Analysis: 30, Scaling: 10, Combination: 75}.Validate())
}

func TestProgressFunc(t *testing.T) {
	var got ProgressReport
	var sink ProgressSink = ProgressFunc(func(r ProgressReport) { got = r })

	sink.Report(ProgressReport{Percent: 42, Status: "Analyzing video 1 of 2..."})
	assert.Equal(t, ProgressReport{Percent: 42, Status: "Analyzing video 1 of 2..."}, got)
}
