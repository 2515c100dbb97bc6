package replenishment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZScoreStandardLevels(t *testing.T) {
	cases := map[float64]float64{
		0.90:  1.282,
		0.95:  1.645,
		0.975: 1.960,
		0.99:  2.326,
	}
	for level, want := range cases {
		z, err := ZScore(level)
		require.NoError(t, err)
		assert.Equal(t, want, z)
	}
}

func TestZScoreOutOfRange(t *testing.T) {
	for _, level := range []float64{-0.5, 0, 1, 1.5} {
		_, err := ZScore(level)
		assert.ErrorIs(t, err, ErrInvalidServiceLevel)
	}
}

func TestZScoreApproximation(t *testing.T) {
	// levels outside the lookup table go through the rational
	// approximation, which must stay close to the true quantile
	cases := map[float64]float64{
		0.50:  0,
		0.80:  0.8416,
		0.85:  1.0364,
		0.995: 2.5758,
	}
	for level, want := range cases {
		z, err := ZScore(level)
		require.NoError(t, err)
		assert.InDelta(t, want, z, 1e-3)
	}
}

func TestComputeRoundTrip(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	m, err := calc.Compute([]int64{10, 12, 14}, 5, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 12.0, m.AvgDailyDemand)
	assert.Equal(t, 1.63, m.DemandStdDev)
	assert.Equal(t, int64(6), m.SafetyStock)
	assert.Equal(t, int64(66), m.ReorderPoint)
}

func TestComputeEmptyHistory(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	m, err := calc.Compute(nil, 3, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.AvgDailyDemand)
	assert.Equal(t, 0.0, m.DemandStdDev)
	assert.Equal(t, int64(0), m.SafetyStock)
	assert.Equal(t, int64(0), m.ReorderPoint)
}

func TestComputeInvalidServiceLevel(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	for _, level := range []float64{0, -0.5, 1, 1.2} {
		_, err := calc.Compute([]int64{1, 2}, 3, level)
		assert.ErrorIs(t, err, ErrInvalidServiceLevel, "level %v", level)
	}
}

func TestComputeMonotonicity(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	// safety stock and reorder point never decrease as variability grows
	histories := [][]int64{
		{10, 10, 10},
		{8, 10, 12},
		{5, 10, 15},
		{0, 10, 20},
	}
	var prevSS, prevROP int64 = -1, -1
	for _, h := range histories {
		m, err := calc.Compute(h, 4, 0.95)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.SafetyStock, prevSS)
		assert.GreaterOrEqual(t, m.ReorderPoint, prevROP)
		prevSS, prevROP = m.SafetyStock, m.ReorderPoint
	}

	// and never decrease in lead time
	prevSS, prevROP = -1, -1
	for leadTime := 1; leadTime <= 10; leadTime++ {
		m, err := calc.Compute([]int64{5, 10, 15}, leadTime, 0.95)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.SafetyStock, prevSS)
		assert.GreaterOrEqual(t, m.ReorderPoint, prevROP)
		prevSS, prevROP = m.SafetyStock, m.ReorderPoint
	}
}

func TestClassify(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	tests := []struct {
		name         string
		quantity     int64
		reorderPoint int64
		safetyStock  int64
		avg          float64
		want         Status
	}{
		{"below safety stock", 5, 20, 6, 2, StatusCritical},
		{"at safety stock", 6, 20, 6, 2, StatusCritical},
		{"between safety and reorder", 15, 20, 6, 2, StatusReorder},
		{"at reorder point", 20, 20, 6, 2, StatusReorder},
		{"just above reorder point", 21, 20, 6, 2, StatusOK},
		{"within a week of demand above", 34, 20, 6, 2, StatusOK},
		{"more than a week above", 35, 20, 6, 2, StatusSurplus},
		{"zero reorder point never surplus", 1000, 0, 0, 0, StatusOK},
		{"critical wins over reorder", 3, 3, 3, 1, StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Classify(tt.quantity, tt.reorderPoint, tt.safetyStock, tt.avg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyZeroQuantityEmptySignal(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())
	// no history at all: quantity 0 sits at the zero safety stock
	assert.Equal(t, StatusCritical, calc.Classify(0, 0, 0, 0))
}

func TestRecommendedOrderQuantity(t *testing.T) {
	assert.Equal(t, int64(58), RecommendedOrderQuantity(66, 20, 12))
	assert.Equal(t, int64(0), RecommendedOrderQuantity(10, 100, 3))
	assert.Equal(t, int64(0), RecommendedOrderQuantity(0, 0, 0))
	assert.Equal(t, int64(13), RecommendedOrderQuantity(10, 0, 2.5))
}
