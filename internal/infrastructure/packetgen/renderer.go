package packetgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	"permitflow/internal/shared/biztime"
)

// Renderer produces the HTML permit packet for a validated submission. The
// document is assembled as markdown, converted with goldmark, and sanitized
// because project names and zoning text come from user input.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) Render(sub *submission.Submission, jurisdiction *rules.Jurisdiction, results []rules.Result) ([]byte, error) {
	markdown := r.buildMarkdown(sub, jurisdiction, results)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render packet markdown: %w", err)
	}

	body := r.policy.SanitizeBytes(buf.Bytes())

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	doc.WriteString("<meta charset=\"utf-8\" />\n")
	fmt.Fprintf(&doc, "<title>Permit Packet %s</title>\n", sub.SID())
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body)
	doc.WriteString("\n</body>\n</html>\n")

	return doc.Bytes(), nil
}

func (r *Renderer) buildMarkdown(sub *submission.Submission, jurisdiction *rules.Jurisdiction, results []rules.Result) string {
	var b strings.Builder
	details := sub.Details()

	fmt.Fprintf(&b, "# Permit Packet: %s\n\n", sub.ProjectName())
	fmt.Fprintf(&b, "- Submission: %s\n", sub.SID())
	fmt.Fprintf(&b, "- Jurisdiction: %s (%s)\n", jurisdiction.Name(), jurisdiction.Code())
	fmt.Fprintf(&b, "- Completeness score: %.2f\n", sub.CompletenessScore())
	fmt.Fprintf(&b, "- Generated: %s\n\n", biztime.FormatTimestamp(biztime.NowUTC()))

	b.WriteString("## Project Details\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Architectural plans | %s |\n", yesNo(details.HasArchitecturalPlans))
	fmt.Fprintf(&b, "| Structural calculations | %s |\n", yesNo(details.HasStructuralCalcs))
	fmt.Fprintf(&b, "| Building height | %.1f ft |\n", details.BuildingHeightFt)
	fmt.Fprintf(&b, "| Setbacks (front/side/rear) | %.1f / %.1f / %.1f ft |\n",
		details.SetbackFrontFt, details.SetbackSideFt, details.SetbackRearFt)
	fmt.Fprintf(&b, "| Fire egress routes | %d |\n", details.FireEgressCount)
	if details.LotAreaSqFt != nil {
		fmt.Fprintf(&b, "| Lot area | %.0f sq ft |\n", *details.LotAreaSqFt)
	}
	if details.ImperviousAreaSqFt != nil {
		fmt.Fprintf(&b, "| Impervious area | %.0f sq ft |\n", *details.ImperviousAreaSqFt)
	}
	if details.HeritageTreeSurvey != nil {
		fmt.Fprintf(&b, "| Heritage tree survey | %s |\n", yesNo(*details.HeritageTreeSurvey))
	}
	if details.ZoningDistrict != nil {
		fmt.Fprintf(&b, "| Zoning district | %s |\n", *details.ZoningDistrict)
	}
	if details.ProposedUse != nil {
		fmt.Fprintf(&b, "| Proposed use | %s |\n", *details.ProposedUse)
	}
	b.WriteString("\n")

	b.WriteString("## Rule Check Results\n\n")
	b.WriteString("| Rule | Severity | Result | Detail |\n|---|---|---|---|\n")
	for _, result := range results {
		outcome := "PASS"
		if !result.Passed {
			outcome = "FAIL"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			result.RuleKey, result.Severity, outcome, result.Message)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
