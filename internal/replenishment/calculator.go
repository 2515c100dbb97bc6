package replenishment

import (
	"errors"
	"math"
)

// Status classifies current stock against the reorder signal. The string
// values are part of the API contract.
type Status string

const (
	StatusOK       Status = "ok"
	StatusReorder  Status = "reorder"
	StatusCritical Status = "critical"
	StatusSurplus  Status = "surplus"
)

// ErrInvalidServiceLevel is returned for service levels outside (0, 1).
var ErrInvalidServiceLevel = errors.New("invalid_service_level")

// DefaultServiceLevel is the target in-stock probability used when a
// product does not carry its own.
const DefaultServiceLevel = 0.95

// DefaultSurplusWindowDays is how many days of demand above the reorder
// point count as surplus.
const DefaultSurplusWindowDays = 7

// zTable holds exact quantiles for the service levels in common use.
// Arbitrary levels fall back to the numeric approximation below.
var zTable = map[float64]float64{
	0.90:  1.282,
	0.95:  1.645,
	0.975: 1.960,
	0.99:  2.326,
}

// ZScore maps a service level to the one-sided standard normal quantile.
func ZScore(serviceLevel float64) (float64, error) {
	if serviceLevel <= 0 || serviceLevel >= 1 {
		return 0, ErrInvalidServiceLevel
	}
	if z, ok := zTable[serviceLevel]; ok {
		return z, nil
	}
	return normQuantile(serviceLevel), nil
}

// Policy carries the tunable replenishment parameters.
type Policy struct {
	DefaultServiceLevel float64 `mapstructure:"defaultServiceLevel"`
	SurplusWindowDays   int     `mapstructure:"surplusWindowDays"`
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultServiceLevel: DefaultServiceLevel,
		SurplusWindowDays:   DefaultSurplusWindowDays,
	}
}

// Metrics is the derived reorder signal for a product.
type Metrics struct {
	AvgDailyDemand float64
	DemandStdDev   float64
	SafetyStock    int64
	ReorderPoint   int64
}

// Calculator derives reorder signals from sales history. It holds only
// policy constants and is safe for concurrent use.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	if policy.DefaultServiceLevel <= 0 || policy.DefaultServiceLevel >= 1 {
		policy.DefaultServiceLevel = DefaultServiceLevel
	}
	if policy.SurplusWindowDays <= 0 {
		policy.SurplusWindowDays = DefaultSurplusWindowDays
	}
	return &Calculator{policy: policy}
}

// Compute derives the cached demand statistics and the reorder signal.
// Any serviceLevel outside (0, 1) is ErrInvalidServiceLevel; callers
// resolve defaults before asking. Safety stock is rounded up: rounding
// down would under-provision the buffer it exists to provide.
func (c *Calculator) Compute(history []int64, leadTime int, serviceLevel float64) (Metrics, error) {
	z, err := ZScore(serviceLevel)
	if err != nil {
		return Metrics{}, err
	}

	avg := Round2(Average(history))
	std := Round2(StdDev(history))

	safetyStock := int64(math.Ceil(z * std * math.Sqrt(float64(leadTime))))
	reorderPoint := int64(math.Ceil(avg*float64(leadTime))) + safetyStock

	return Metrics{
		AvgDailyDemand: avg,
		DemandStdDev:   std,
		SafetyStock:    safetyStock,
		ReorderPoint:   reorderPoint,
	}, nil
}

// Classify partitions the current quantity into exactly one status.
// Critical wins over reorder, reorder over surplus.
func (c *Calculator) Classify(quantity, reorderPoint, safetyStock int64, avgDailyDemand float64) Status {
	if quantity <= safetyStock {
		return StatusCritical
	}
	if quantity <= reorderPoint {
		return StatusReorder
	}
	surplusThreshold := float64(reorderPoint) + avgDailyDemand*float64(c.policy.SurplusWindowDays)
	if reorderPoint > 0 && float64(quantity) > surplusThreshold {
		return StatusSurplus
	}
	return StatusOK
}

// RecommendedOrderQuantity is the quantity restoring stock to one day
// past the reorder point.
func RecommendedOrderQuantity(reorderPoint, quantity int64, avgDailyDemand float64) int64 {
	qty := int64(math.Ceil(float64(reorderPoint-quantity) + avgDailyDemand))
	if qty < 0 {
		return 0
	}
	return qty
}

// normQuantile approximates the standard normal inverse CDF with
// Acklam's rational polynomials. Relative error stays below 1.15e-9
// across the open unit interval, more than enough resolution for
// service-level targets.
func normQuantile(p float64) float64 {
	a := [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02,
		-2.759285104469687e+02, 1.383577518672690e+02,
		-3.066479806614716e+01, 2.506628277459239e+00,
	}
	b := [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02,
		-1.556989798598866e+02, 6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	cc := [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01,
		-2.400758277161838e+00, -2.549732539343734e+00,
		4.374664141464968e+00, 2.938163982698783e+00,
	}
	d := [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}

	const plow = 0.02425
	const phigh = 1 - plow

	switch {
	case p < plow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((cc[0]*q+cc[1])*q+cc[2])*q+cc[3])*q+cc[4])*q + cc[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > phigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((cc[0]*q+cc[1])*q+cc[2])*q+cc[3])*q+cc[4])*q + cc[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}
