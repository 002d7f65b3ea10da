package rules

import "fmt"

// Rule keys recognized by the logic registry. Seeded rule configurations may
// reference keys ahead of deployed logic; unknown keys are skipped during
// evaluation rather than failing it.
const (
	KeyPlansSubmitted    = "plans_submitted"
	KeyStructuralCalcs   = "structural_calcs"
	KeyHeightLimit       = "height_limit"
	KeySetbackMinimums   = "setback_minimums"
	KeyFireEgress        = "fire_egress"
	KeyImperviousCover   = "impervious_cover"
	KeyHeritageTree      = "heritage_tree"
	KeyHillCountryHeight = "height_limit_hill_country"
	KeyStandpipeHeight   = "standpipe_height"
)

// Rule is one entry of a RuleSet: a key matched against the logic registry,
// a severity, and a human description.
type Rule struct {
	id          uint
	key         string
	severity    Severity
	description string
}

func NewRule(key string, severity Severity, description string) (Rule, error) {
	if key == "" {
		return Rule{}, fmt.Errorf("rule key is required")
	}
	if !severity.IsValid() {
		return Rule{}, fmt.Errorf("invalid rule severity: %s", severity)
	}

	return Rule{
		key:         key,
		severity:    severity,
		description: description,
	}, nil
}

func ReconstructRule(id uint, key string, severity Severity, description string) (Rule, error) {
	if id == 0 {
		return Rule{}, fmt.Errorf("rule ID cannot be zero")
	}
	if key == "" {
		return Rule{}, fmt.Errorf("rule key is required")
	}

	return Rule{
		id:          id,
		key:         key,
		severity:    severity,
		description: description,
	}, nil
}

func (r Rule) ID() uint {
	return r.id
}

func (r Rule) Key() string {
	return r.key
}

func (r Rule) Severity() Severity {
	return r.severity
}

func (r Rule) Description() string {
	return r.description
}
