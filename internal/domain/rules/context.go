package rules

// Context is the ephemeral input to rule evaluation: the submission
// attributes captured at intake or edit time. Optional fields are pointers so
// that absent data is explicit and each logic implementation must handle the
// missing case rather than rely on zero values.
type Context struct {
	ProjectName           string  `json:"project_name"`
	HasArchitecturalPlans bool    `json:"has_architectural_plans"`
	HasStructuralCalcs    bool    `json:"has_structural_calcs"`
	BuildingHeightFt      float64 `json:"building_height_ft"`
	SetbackFrontFt        float64 `json:"setback_front_ft"`
	SetbackSideFt         float64 `json:"setback_side_ft"`
	SetbackRearFt         float64 `json:"setback_rear_ft"`
	FireEgressCount       int     `json:"fire_egress_count"`

	// Jurisdiction-specific optional fields.
	LotAreaSqFt        *float64 `json:"lot_area_sqft,omitempty"`
	ImperviousAreaSqFt *float64 `json:"impervious_area_sqft,omitempty"`
	HeritageTreeSurvey *bool    `json:"heritage_tree_survey,omitempty"`
	ZoningDistrict     *string  `json:"zoning_district,omitempty"`
	ProposedUse        *string  `json:"proposed_use,omitempty"`
}

// Result is the output of evaluating one rule against one context. Severity
// is copied from the rule definition at evaluation time, not re-derived later.
type Result struct {
	RuleKey  string   `json:"rule_key"`
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
