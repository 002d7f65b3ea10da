package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"permitflow/internal/shared/logger"
)

// Sentinel errors surfaced by rule-set resolution. The application layer maps
// them onto the API error taxonomy.
var (
	// ErrInvalidJurisdiction is a user input error: the code matches no
	// known jurisdiction.
	ErrInvalidJurisdiction = errors.New("unknown jurisdiction code")

	// ErrNoActiveRuleSet is a configuration gap: the jurisdiction exists but
	// every rule set is future-dated relative to the evaluation time.
	ErrNoActiveRuleSet = errors.New("no active rule set for jurisdiction")
)

// JurisdictionRepository provides lookups of jurisdictions.
type JurisdictionRepository interface {
	Save(ctx context.Context, j *Jurisdiction) error
	FindByCode(ctx context.Context, code string) (*Jurisdiction, error)
	FindByID(ctx context.Context, id uint) (*Jurisdiction, error)
	List(ctx context.Context) ([]*Jurisdiction, error)
}

// RuleSetRepository provides lookups of rule sets and their rules.
type RuleSetRepository interface {
	Save(ctx context.Context, rs *RuleSet) error
	// FindActive returns the rule set with the greatest effective date not
	// exceeding asOf, or ErrRuleSetNotFound when none qualifies.
	FindActive(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error)
	FindByVersion(ctx context.Context, jurisdictionID uint, version int) (*RuleSet, error)
}

// ErrRuleSetNotFound is returned by RuleSetRepository lookups with no match.
var ErrRuleSetNotFound = errors.New("rule set not found")

// ErrJurisdictionNotFound is returned by JurisdictionRepository lookups with
// no match.
var ErrJurisdictionNotFound = errors.New("jurisdiction not found")

// Catalog resolves the applicable, currently-effective rule set for a
// jurisdiction. Resolution is deterministic for a fixed asOf even when new
// future-dated rule sets are added concurrently, because only rule sets with
// effectiveDate <= asOf participate.
type Catalog struct {
	jurisdictions JurisdictionRepository
	ruleSets      RuleSetRepository
	logger        logger.Interface
}

func NewCatalog(jurisdictions JurisdictionRepository, ruleSets RuleSetRepository, log logger.Interface) *Catalog {
	return &Catalog{
		jurisdictions: jurisdictions,
		ruleSets:      ruleSets,
		logger:        log,
	}
}

// ResolveActive returns the rule set in force for the jurisdiction at asOf.
func (c *Catalog) ResolveActive(ctx context.Context, jurisdictionCode string, asOf time.Time) (*RuleSet, error) {
	j, err := c.jurisdictions.FindByCode(ctx, jurisdictionCode)
	if err != nil {
		if errors.Is(err, ErrJurisdictionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJurisdiction, jurisdictionCode)
		}
		return nil, fmt.Errorf("failed to look up jurisdiction %s: %w", jurisdictionCode, err)
	}

	rs, err := c.ruleSets.FindActive(ctx, j.ID(), asOf)
	if err != nil {
		if errors.Is(err, ErrRuleSetNotFound) {
			c.logger.Warnw("jurisdiction has no effective rule set",
				"jurisdiction_code", jurisdictionCode,
				"as_of", asOf,
			)
			return nil, fmt.Errorf("%w: %s", ErrNoActiveRuleSet, jurisdictionCode)
		}
		return nil, fmt.Errorf("failed to resolve rule set for %s: %w", jurisdictionCode, err)
	}

	return rs, nil
}

// ResolveActiveByID is ResolveActive for callers that already hold the
// jurisdiction's database ID, such as re-evaluation of an existing
// submission.
func (c *Catalog) ResolveActiveByID(ctx context.Context, jurisdictionID uint, asOf time.Time) (*RuleSet, error) {
	rs, err := c.ruleSets.FindActive(ctx, jurisdictionID, asOf)
	if err != nil {
		if errors.Is(err, ErrRuleSetNotFound) {
			c.logger.Warnw("jurisdiction has no effective rule set",
				"jurisdiction_id", jurisdictionID,
				"as_of", asOf,
			)
			return nil, fmt.Errorf("%w: jurisdiction %d", ErrNoActiveRuleSet, jurisdictionID)
		}
		return nil, fmt.Errorf("failed to resolve rule set for jurisdiction %d: %w", jurisdictionID, err)
	}

	return rs, nil
}
