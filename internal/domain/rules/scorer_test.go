package rules

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    float64
	}{
		{
			name:    "no results yields complete",
			results: nil,
			want:    1.0,
		},
		{
			name: "only warnings yields complete",
			results: []Result{
				{RuleKey: "heritage_tree", Passed: false, Severity: SeverityWarning},
			},
			want: 1.0,
		},
		{
			name: "all required pass",
			results: []Result{
				{RuleKey: "plans_submitted", Passed: true, Severity: SeverityRequired},
				{RuleKey: "height_limit", Passed: true, Severity: SeverityRequired},
			},
			want: 1.0,
		},
		{
			name: "all required fail",
			results: []Result{
				{RuleKey: "plans_submitted", Passed: false, Severity: SeverityRequired},
				{RuleKey: "height_limit", Passed: false, Severity: SeverityRequired},
			},
			want: 0.0,
		},
		{
			name: "partial pass rounds to two decimals",
			results: []Result{
				{RuleKey: "plans_submitted", Passed: true, Severity: SeverityRequired},
				{RuleKey: "structural_calcs", Passed: true, Severity: SeverityRequired},
				{RuleKey: "height_limit", Passed: false, Severity: SeverityRequired},
			},
			want: 0.67,
		},
		{
			name: "warnings do not dilute the score",
			results: []Result{
				{RuleKey: "plans_submitted", Passed: true, Severity: SeverityRequired},
				{RuleKey: "heritage_tree", Passed: false, Severity: SeverityWarning},
			},
			want: 1.0,
		},
		{
			name: "one of six required",
			results: []Result{
				{RuleKey: "a", Passed: true, Severity: SeverityRequired},
				{RuleKey: "b", Passed: false, Severity: SeverityRequired},
				{RuleKey: "c", Passed: false, Severity: SeverityRequired},
				{RuleKey: "d", Passed: false, Severity: SeverityRequired},
				{RuleKey: "e", Passed: false, Severity: SeverityRequired},
				{RuleKey: "f", Passed: false, Severity: SeverityRequired},
			},
			want: 0.17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.results)
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
