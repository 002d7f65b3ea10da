package rules

import "fmt"

// Outcome is the verdict of a single logic function.
type Outcome struct {
	Passed  bool
	Message string
}

// Logic is a pure, total function of the submission context. Implementations
// must not perform I/O and must handle missing optional fields by failing
// with an explanatory message rather than erroring. Identical (context, rule)
// pairs always yield identical outcomes.
type Logic interface {
	Evaluate(rctx Context) Outcome
}

// Registry maps rule keys to their logic implementations. Keys without an
// implementation are skipped at evaluation time.
type Registry map[string]Logic

// NewRegistry builds the registry with every deployed rule implementation.
// Thresholds that differ per jurisdiction profile are bound here as
// configuration of the shared strategies.
func NewRegistry() Registry {
	return Registry{
		KeyPlansSubmitted: boolFlagLogic{
			value:       func(rctx Context) bool { return rctx.HasArchitecturalPlans },
			passMessage: "Architectural plans have been submitted",
			failMessage: "Architectural plans are required but have not been submitted",
		},
		KeyStructuralCalcs: boolFlagLogic{
			value:       func(rctx Context) bool { return rctx.HasStructuralCalcs },
			passMessage: "Structural calculations have been submitted",
			failMessage: "Structural calculations are required but have not been submitted",
		},
		KeyHeightLimit:       heightLimitLogic{limitFt: 40},
		KeyHillCountryHeight: heightLimitLogic{limitFt: 35},
		KeyStandpipeHeight:   standpipeLogic{thresholdFt: 75},
		KeySetbackMinimums:   setbackLogic{frontFt: 20, sideFt: 5, rearFt: 25},
		KeyFireEgress:        egressLogic{minimum: 2},
		KeyImperviousCover:   imperviousLogic{maxRatio: 0.45},
		KeyHeritageTree:      heritageTreeLogic{},
	}
}

// Lookup returns the logic bound to a key, or false when none is deployed.
func (r Registry) Lookup(key string) (Logic, bool) {
	logic, ok := r[key]
	return logic, ok
}

// Register binds a logic implementation to a key, replacing any existing
// binding. Intended for jurisdiction-specific extensions at startup.
func (r Registry) Register(key string, logic Logic) {
	r[key] = logic
}

// boolFlagLogic passes through a boolean submission flag with a fixed
// message pair.
type boolFlagLogic struct {
	value       func(rctx Context) bool
	passMessage string
	failMessage string
}

func (l boolFlagLogic) Evaluate(rctx Context) Outcome {
	if l.value(rctx) {
		return Outcome{Passed: true, Message: l.passMessage}
	}
	return Outcome{Passed: false, Message: l.failMessage}
}

type heightLimitLogic struct {
	limitFt int
}

func (l heightLimitLogic) Evaluate(rctx Context) Outcome {
	if rctx.BuildingHeightFt <= float64(l.limitFt) {
		return Outcome{
			Passed:  true,
			Message: fmt.Sprintf("Building height of %.1f ft is within the %d-foot limit", rctx.BuildingHeightFt, l.limitFt),
		}
	}
	return Outcome{
		Passed:  false,
		Message: fmt.Sprintf("Building height of %.1f ft exceeds the %d-foot limit", rctx.BuildingHeightFt, l.limitFt),
	}
}

// standpipeLogic flags buildings tall enough to need a standpipe system.
type standpipeLogic struct {
	thresholdFt int
}

func (l standpipeLogic) Evaluate(rctx Context) Outcome {
	if rctx.BuildingHeightFt <= float64(l.thresholdFt) {
		return Outcome{
			Passed:  true,
			Message: fmt.Sprintf("Building height of %.1f ft is below the %d-foot standpipe threshold", rctx.BuildingHeightFt, l.thresholdFt),
		}
	}
	return Outcome{
		Passed:  false,
		Message: fmt.Sprintf("Building height of %.1f ft exceeds the %d-foot standpipe threshold; standpipe plans are required", rctx.BuildingHeightFt, l.thresholdFt),
	}
}

type setbackLogic struct {
	frontFt float64
	sideFt  float64
	rearFt  float64
}

func (l setbackLogic) Evaluate(rctx Context) Outcome {
	ok := rctx.SetbackFrontFt >= l.frontFt &&
		rctx.SetbackSideFt >= l.sideFt &&
		rctx.SetbackRearFt >= l.rearFt

	if ok {
		return Outcome{Passed: true, Message: "All setbacks meet the required minimums"}
	}
	return Outcome{
		Passed: false,
		Message: fmt.Sprintf(
			"Setbacks do not meet minimums of %.0f ft front, %.0f ft side, %.0f ft rear (got %.1f/%.1f/%.1f)",
			l.frontFt, l.sideFt, l.rearFt,
			rctx.SetbackFrontFt, rctx.SetbackSideFt, rctx.SetbackRearFt,
		),
	}
}

type egressLogic struct {
	minimum int
}

func (l egressLogic) Evaluate(rctx Context) Outcome {
	if rctx.FireEgressCount >= l.minimum {
		return Outcome{
			Passed:  true,
			Message: fmt.Sprintf("Fire egress count of %d meets the minimum of %d", rctx.FireEgressCount, l.minimum),
		}
	}
	return Outcome{
		Passed:  false,
		Message: fmt.Sprintf("Fire egress count of %d is below the minimum of %d", rctx.FireEgressCount, l.minimum),
	}
}

type imperviousLogic struct {
	maxRatio float64
}

func (l imperviousLogic) Evaluate(rctx Context) Outcome {
	if rctx.LotAreaSqFt == nil || rctx.ImperviousAreaSqFt == nil || *rctx.LotAreaSqFt <= 0 {
		return Outcome{
			Passed:  false,
			Message: "Lot area and impervious area are required to evaluate impervious cover",
		}
	}

	ratio := *rctx.ImperviousAreaSqFt / *rctx.LotAreaSqFt
	pct := ratio * 100
	maxPct := l.maxRatio * 100

	if ratio <= l.maxRatio {
		return Outcome{
			Passed:  true,
			Message: fmt.Sprintf("Impervious cover of %.1f%% is within the %.0f%% maximum", pct, maxPct),
		}
	}
	return Outcome{
		Passed:  false,
		Message: fmt.Sprintf("Impervious cover of %.1f%% exceeds the %.0f%% maximum", pct, maxPct),
	}
}

type heritageTreeLogic struct{}

func (l heritageTreeLogic) Evaluate(rctx Context) Outcome {
	if rctx.HeritageTreeSurvey == nil {
		return Outcome{
			Passed:  false,
			Message: "Heritage tree survey status has not been provided",
		}
	}
	if *rctx.HeritageTreeSurvey {
		return Outcome{Passed: true, Message: "Heritage tree survey has been completed"}
	}
	return Outcome{
		Passed:  false,
		Message: "A heritage tree survey is required but has not been completed",
	}
}
