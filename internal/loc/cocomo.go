package loc

import "math"

// Organic mode coefficients.
const (
	organicA = 2.4
	organicB = 1.05
	organicC = 2.5
	organicD = 0.38
)

// DefaultScale multiplies counted lines before estimating.
const DefaultScale = 100

// DefaultMonthlySalary is the per-person monthly cost used for estimates.
const DefaultMonthlySalary = 2_000_000

// Estimate is an organic COCOMO projection.
type Estimate struct {
	CodeLines     int
	ScaledLines   int
	KLOC          float64
	Effort        float64 // person-months
	DevTime       float64 // months
	People        float64
	Productivity  float64 // LOC per person-month
	MonthlySalary float64
	TotalCost     float64

	// Reduced schedule: half the development time, rounded up.
	ReducedMonths float64
	ReducedPeople float64
	ReducedCost   float64
}

// TeamSize is People rounded up to whole persons.
func (e Estimate) TeamSize() int {
	return int(math.Ceil(e.People))
}

// Compute derives an organic COCOMO estimate for code lines multiplied by
// scale. Zero code lines produce a zero estimate.
func Compute(code, scale int, monthlySalary float64) Estimate {
	e := Estimate{
		CodeLines:     code,
		ScaledLines:   code * scale,
		MonthlySalary: monthlySalary,
	}
	if e.ScaledLines <= 0 {
		return e
	}

	e.KLOC = float64(e.ScaledLines) / 1000
	e.Effort = organicA * math.Pow(e.KLOC, organicB)
	e.DevTime = organicC * math.Pow(e.Effort, organicD)
	e.People = e.Effort / e.DevTime
	e.Productivity = float64(e.ScaledLines) / e.Effort
	e.TotalCost = monthlySalary * math.Ceil(e.People) * e.DevTime

	e.ReducedMonths = math.Ceil(e.DevTime / 2)
	e.ReducedPeople = e.Effort / e.ReducedMonths
	e.ReducedCost = monthlySalary * math.Ceil(e.ReducedPeople) * e.ReducedMonths
	return e
}
