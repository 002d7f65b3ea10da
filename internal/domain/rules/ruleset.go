package rules

import (
	"fmt"
	"time"
)

// RuleSet is a versioned, effective-dated bundle of rules for one
// jurisdiction. The (jurisdiction, version) pair is unique; at any evaluation
// time exactly one rule set is active: the most recently effective one not in
// the future.
type RuleSet struct {
	id             uint
	jurisdictionID uint
	version        int
	effectiveDate  time.Time
	rules          []Rule
}

func NewRuleSet(jurisdictionID uint, version int, effectiveDate time.Time, ruleDefs []Rule) (*RuleSet, error) {
	if jurisdictionID == 0 {
		return nil, fmt.Errorf("jurisdiction ID is required")
	}
	if version < 1 {
		return nil, fmt.Errorf("rule set version must be positive")
	}
	if effectiveDate.IsZero() {
		return nil, fmt.Errorf("effective date is required")
	}

	return &RuleSet{
		jurisdictionID: jurisdictionID,
		version:        version,
		effectiveDate:  effectiveDate.UTC(),
		rules:          ruleDefs,
	}, nil
}

func ReconstructRuleSet(id, jurisdictionID uint, version int, effectiveDate time.Time, ruleDefs []Rule) (*RuleSet, error) {
	if id == 0 {
		return nil, fmt.Errorf("rule set ID cannot be zero")
	}
	if jurisdictionID == 0 {
		return nil, fmt.Errorf("jurisdiction ID is required")
	}

	return &RuleSet{
		id:             id,
		jurisdictionID: jurisdictionID,
		version:        version,
		effectiveDate:  effectiveDate.UTC(),
		rules:          ruleDefs,
	}, nil
}

func (rs *RuleSet) ID() uint {
	return rs.id
}

func (rs *RuleSet) JurisdictionID() uint {
	return rs.jurisdictionID
}

func (rs *RuleSet) Version() int {
	return rs.version
}

func (rs *RuleSet) EffectiveDate() time.Time {
	return rs.effectiveDate
}

// Rules returns a copy of the rule definitions.
func (rs *RuleSet) Rules() []Rule {
	rulesCopy := make([]Rule, len(rs.rules))
	copy(rulesCopy, rs.rules)
	return rulesCopy
}

// IsEffectiveAt reports whether the rule set is in force at time t.
func (rs *RuleSet) IsEffectiveAt(t time.Time) bool {
	return !rs.effectiveDate.After(t)
}

func (rs *RuleSet) SetID(id uint) error {
	if rs.id != 0 {
		return fmt.Errorf("rule set ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("rule set ID cannot be zero")
	}
	rs.id = id
	return nil
}
