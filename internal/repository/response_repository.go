package repository

import (
	"context"

	"github.com/lshigami/ExamPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository interface {
	// Upsert writes the response keyed on (attempt, question) and adds
	// deltaSeconds to the stored cumulative time.
	Upsert(ctx context.Context, response *model.Response, deltaSeconds int64) (*model.Response, error)
	FindByAttempt(ctx context.Context, attemptID uint) ([]model.Response, error)
	WithTx(tx *gorm.DB) ResponseRepository
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) WithTx(tx *gorm.DB) ResponseRepository {
	return &responseRepository{db: tx}
}

func (r *responseRepository) Upsert(ctx context.Context, response *model.Response, deltaSeconds int64) (*model.Response, error) {
	response.TimeSpentSeconds = deltaSeconds
	updates := clause.AssignmentColumns([]string{"selected_choice", "selected_numeric", "status", "updated_at"})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "time_spent_seconds"},
		Value:  gorm.Expr("responses.time_spent_seconds + ?", deltaSeconds),
	})

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: updates,
	}).Create(response).Error
	if err != nil {
		return nil, err
	}

	var stored model.Response
	err = r.db.WithContext(ctx).
		Where("attempt_id = ? AND question_id = ?", response.AttemptID, response.QuestionID).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *responseRepository) FindByAttempt(ctx context.Context, attemptID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&responses).Error
	return responses, err
}
