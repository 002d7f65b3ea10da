package rules

import "permitflow/internal/shared/logger"

// Evaluator executes the logic bound to each rule of a rule set against a
// submission context. Rules whose key has no deployed logic are skipped with
// a warning diagnostic: seeded rule configuration may outpace deployed code,
// and that must degrade gracefully rather than fail the evaluation.
type Evaluator struct {
	registry Registry
	logger   logger.Interface
}

func NewEvaluator(registry Registry, log logger.Interface) *Evaluator {
	return &Evaluator{
		registry: registry,
		logger:   log,
	}
}

// Evaluate runs every rule of the set against the context. The returned
// results carry the rule key and the severity copied from the rule
// definition at evaluation time.
func (e *Evaluator) Evaluate(rctx Context, ruleSet *RuleSet) []Result {
	ruleDefs := ruleSet.Rules()
	results := make([]Result, 0, len(ruleDefs))

	for _, rule := range ruleDefs {
		logic, ok := e.registry.Lookup(rule.Key())
		if !ok {
			e.logger.Warnw("no logic registered for rule key, skipping",
				"rule_key", rule.Key(),
				"rule_set_id", ruleSet.ID(),
			)
			continue
		}

		outcome := logic.Evaluate(rctx)
		results = append(results, Result{
			RuleKey:  rule.Key(),
			Passed:   outcome.Passed,
			Message:  outcome.Message,
			Severity: rule.Severity(),
		})
	}

	return results
}
