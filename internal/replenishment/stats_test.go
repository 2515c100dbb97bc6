package replenishment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]int64{}))
	assert.Equal(t, 5.0, Average([]int64{5}))
	assert.Equal(t, 12.0, Average([]int64{10, 12, 14}))
	assert.Equal(t, 2.5, Average([]int64{1, 2, 3, 4}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]int64{7}))
	assert.Equal(t, 0.0, StdDev([]int64{4, 4, 4}))

	// population std dev of [10, 12, 14] is sqrt(8/3)
	assert.InDelta(t, 1.63299, StdDev([]int64{10, 12, 14}), 1e-5)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.63, Round2(1.632993))
	assert.Equal(t, 2.68, Round2(2.678))
	assert.Equal(t, 12.0, Round2(12))
	assert.Equal(t, 0.0, Round2(0))
}
