package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"permitflow/internal/domain/rules"
	"permitflow/internal/domain/submission"
	"permitflow/internal/infrastructure/persistence/mappers"
	"permitflow/internal/infrastructure/persistence/models"
	db "permitflow/internal/shared/db"
)

// allowedSubmissionOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedSubmissionOrderByFields = map[string]bool{
	"id":                 true,
	"sid":                true,
	"project_name":       true,
	"state":              true,
	"completeness_score": true,
	"created_at":         true,
	"updated_at":         true,
}

type SubmissionRepository struct {
	db     *gorm.DB
	mapper mappers.SubmissionMapper
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		mapper: mappers.NewSubmissionMapper(),
	}
}

func (r *SubmissionRepository) Save(ctx context.Context, s *submission.Submission) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *SubmissionRepository) Update(ctx context.Context, s *submission.Submission) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	// Compare-and-set on the state observed at load time: a concurrent
	// transition that committed first leaves no matching row, and the stale
	// write is rejected instead of silently overwriting the winner.
	result := tx.
		Model(&models.SubmissionModel{}).
		Where("id = ? AND organization_id = ? AND state = ?",
			model.ID, model.OrganizationID, s.PersistedState().String()).
		Select("project_name", "state", "completeness_score", "details", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrStaleState
	}

	s.MarkStatePersisted()
	return nil
}

func (r *SubmissionRepository) FindBySID(ctx context.Context, sid string, organizationID uint) (*submission.Submission, error) {
	var model models.SubmissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	// Tenant scoping in the query itself: a submission owned by another
	// organization is indistinguishable from a missing one.
	if err := tx.
		Where("sid = ? AND organization_id = ?", sid, organizationID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, submission.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SubmissionRepository) List(
	ctx context.Context,
	organizationID uint,
	filter submission.Filter,
) ([]*submission.Submission, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SubmissionModel{}).
		Where("organization_id = ?", organizationID)

	if filter.State != nil {
		query = query.Where("state = ?", filter.State.String())
	}
	if filter.JurisdictionID != nil {
		query = query.Where("jurisdiction_id = ?", *filter.JurisdictionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedSubmissionOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var modelRows []models.SubmissionModel
	if err := query.Find(&modelRows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*submission.Submission, 0, len(modelRows))
	for i := range modelRows {
		s, err := r.mapper.ToDomain(&modelRows[i])
		if err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, s)
	}

	return submissions, total, nil
}

// ReplaceRuleResults deletes every persisted result of the submission and
// inserts the new set. Re-evaluation replaces results wholesale; partial
// patches would leave stale verdicts behind.
func (r *SubmissionRepository) ReplaceRuleResults(ctx context.Context, submissionID uint, results []rules.Result) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("submission_id = ?", submissionID).
		Delete(&models.RuleResultModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete rule results: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	resultModels := make([]*models.RuleResultModel, 0, len(results))
	for _, result := range results {
		resultModels = append(resultModels, r.mapper.ResultToModel(submissionID, result))
	}

	if err := tx.Create(&resultModels).Error; err != nil {
		return fmt.Errorf("failed to insert rule results: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) FindRuleResults(ctx context.Context, submissionID uint) ([]rules.Result, error) {
	var resultModels []models.RuleResultModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("submission_id = ?", submissionID).
		Order("id ASC").
		Find(&resultModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find rule results: %w", err)
	}

	results := make([]rules.Result, 0, len(resultModels))
	for i := range resultModels {
		result, err := r.mapper.ResultToDomain(&resultModels[i])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}
