package submission

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"permitflow/internal/application/submission/usecases"
	"permitflow/internal/domain/rules"
	"permitflow/internal/shared/actor"
	"permitflow/internal/shared/errors"
	"permitflow/internal/shared/utils"
)

type SubmissionDetailsRequest struct {
	HasArchitecturalPlans bool    `json:"has_architectural_plans"`
	HasStructuralCalcs    bool    `json:"has_structural_calcs"`
	BuildingHeightFt      float64 `json:"building_height_ft" binding:"min=0"`
	SetbackFrontFt        float64 `json:"setback_front_ft" binding:"min=0"`
	SetbackSideFt         float64 `json:"setback_side_ft" binding:"min=0"`
	SetbackRearFt         float64 `json:"setback_rear_ft" binding:"min=0"`
	FireEgressCount       int     `json:"fire_egress_count" binding:"min=0"`

	LotAreaSqFt        *float64 `json:"lot_area_sqft,omitempty"`
	ImperviousAreaSqFt *float64 `json:"impervious_area_sqft,omitempty"`
	HeritageTreeSurvey *bool    `json:"heritage_tree_survey,omitempty"`
	ZoningDistrict     *string  `json:"zoning_district,omitempty"`
	ProposedUse        *string  `json:"proposed_use,omitempty"`
}

func (r *SubmissionDetailsRequest) toContext(projectName string) rules.Context {
	return rules.Context{
		ProjectName:           projectName,
		HasArchitecturalPlans: r.HasArchitecturalPlans,
		HasStructuralCalcs:    r.HasStructuralCalcs,
		BuildingHeightFt:      r.BuildingHeightFt,
		SetbackFrontFt:        r.SetbackFrontFt,
		SetbackSideFt:         r.SetbackSideFt,
		SetbackRearFt:         r.SetbackRearFt,
		FireEgressCount:       r.FireEgressCount,
		LotAreaSqFt:           r.LotAreaSqFt,
		ImperviousAreaSqFt:    r.ImperviousAreaSqFt,
		HeritageTreeSurvey:    r.HeritageTreeSurvey,
		ZoningDistrict:        r.ZoningDistrict,
		ProposedUse:           r.ProposedUse,
	}
}

type CreateSubmissionRequest struct {
	ProjectName      string                   `json:"project_name" binding:"required,max=200"`
	JurisdictionCode string                   `json:"jurisdiction_code" binding:"required,max=10"`
	Details          SubmissionDetailsRequest `json:"details" binding:"required"`
}

func (r *CreateSubmissionRequest) ToCommand(a actor.Actor) usecases.CreateSubmissionCommand {
	return usecases.CreateSubmissionCommand{
		ProjectName:      r.ProjectName,
		JurisdictionCode: r.JurisdictionCode,
		Details:          r.Details.toContext(r.ProjectName),
		Actor:            a,
	}
}

type UpdateDraftRequest struct {
	ProjectName string                   `json:"project_name" binding:"required,max=200"`
	Details     SubmissionDetailsRequest `json:"details" binding:"required"`
}

func (r *UpdateDraftRequest) ToCommand(sid string, a actor.Actor) usecases.UpdateDraftCommand {
	return usecases.UpdateDraftCommand{
		SID:         sid,
		ProjectName: r.ProjectName,
		Details:     r.Details.toContext(r.ProjectName),
		Actor:       a,
	}
}

type TransitionRequest struct {
	TargetState string `json:"target_state" binding:"required"`
}

type ListSubmissionsRequest struct {
	Page           int
	PageSize       int
	State          string
	JurisdictionID *uint
	SortBy         string
	SortOrder      string
}

func parseListSubmissionsRequest(c *gin.Context) (*ListSubmissionsRequest, error) {
	pagination := utils.ParsePagination(c)

	req := &ListSubmissionsRequest{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		State:     c.Query("state"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if raw := c.Query("jurisdiction_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid jurisdiction_id")
		}
		jid := uint(id)
		req.JurisdictionID = &jid
	}

	return req, nil
}

func (r *ListSubmissionsRequest) ToQuery(a actor.Actor) usecases.ListSubmissionsQuery {
	return usecases.ListSubmissionsQuery{
		State:          r.State,
		JurisdictionID: r.JurisdictionID,
		Page:           r.Page,
		PageSize:       r.PageSize,
		SortBy:         r.SortBy,
		SortOrder:      r.SortOrder,
		Actor:          a,
	}
}
