package packetgen

import (
	"testing"
	"time"

	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	vo "permitflow/internal/domain/submission/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixtures(t *testing.T, projectName string) (*submission.Submission, *rules.Jurisdiction) {
	t.Helper()
	now := time.Now().UTC()

	zoning := "SF-3"
	lotArea := 8500.0
	details := rules.Context{
		ProjectName:           projectName,
		HasArchitecturalPlans: true,
		HasStructuralCalcs:    true,
		BuildingHeightFt:      32,
		SetbackFrontFt:        25,
		SetbackSideFt:         7,
		SetbackRearFt:         30,
		FireEgressCount:       2,
		LotAreaSqFt:           &lotArea,
		ZoningDistrict:        &zoning,
	}

	sub, err := submission.ReconstructSubmission(
		42, "sub_abcdef123456", projectName, vo.StateValidated, 1.0, details, 10, 7, now, now)
	require.NoError(t, err)

	jurisdiction, err := rules.ReconstructJurisdiction(7, "ATX", "Austin", now)
	require.NoError(t, err)

	return sub, jurisdiction
}

func TestRenderer_Render(t *testing.T) {
	sub, jurisdiction := renderFixtures(t, "Riverside Duplex")

	results := []rules.Result{
		{RuleKey: "plans_submitted", Passed: true, Message: "Architectural plans have been submitted", Severity: rules.SeverityRequired},
		{RuleKey: "height_limit", Passed: false, Message: "Building height of 45.0 ft exceeds the 40-foot limit", Severity: rules.SeverityRequired},
	}

	data, err := NewRenderer().Render(sub, jurisdiction, results)
	require.NoError(t, err)

	doc := string(data)
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "Permit Packet sub_abcdef123456")
	assert.Contains(t, doc, "Riverside Duplex")
	assert.Contains(t, doc, "Austin")
	assert.Contains(t, doc, "PASS")
	assert.Contains(t, doc, "FAIL")
	assert.Contains(t, doc, "exceeds the 40-foot limit")
	assert.Contains(t, doc, "SF-3")
	assert.Contains(t, doc, "8500 sq ft")
}

func TestRenderer_Render_SanitizesUserInput(t *testing.T) {
	sub, jurisdiction := renderFixtures(t, `Duplex <script>alert("xss")</script>`)

	data, err := NewRenderer().Render(sub, jurisdiction, nil)
	require.NoError(t, err)

	doc := string(data)
	assert.NotContains(t, doc, "<script>")
	assert.NotContains(t, doc, `alert("xss")`)
}

func TestRenderer_Render_OmitsAbsentOptionalFields(t *testing.T) {
	now := time.Now().UTC()
	sub, err := submission.ReconstructSubmission(
		42, "sub_abcdef123456", "Bare Minimum", vo.StateValidated, 1.0,
		rules.Context{ProjectName: "Bare Minimum"}, 10, 7, now, now)
	require.NoError(t, err)

	jurisdiction, err := rules.ReconstructJurisdiction(7, "ATX", "Austin", now)
	require.NoError(t, err)

	data, err := NewRenderer().Render(sub, jurisdiction, nil)
	require.NoError(t, err)

	doc := string(data)
	assert.NotContains(t, doc, "Lot area")
	assert.NotContains(t, doc, "Heritage tree survey")
	assert.NotContains(t, doc, "Zoning district")
}
