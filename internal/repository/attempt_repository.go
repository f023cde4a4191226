package repository

import (
	"context"
	"time"

	"github.com/lshigami/ExamPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreFields is what the scoring engine writes back onto an attempt.
type ScoreFields struct {
	CorrectCount int
	WrongCount   int
	SkippedCount int
	NetMarks     float64
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByID(ctx context.Context, id uint) (*model.Attempt, error)
	FindActive(ctx context.Context, studentID, examID uint) (*model.Attempt, error)
	FindByStudent(ctx context.Context, studentID uint) ([]model.Attempt, error)
	FindByExam(ctx context.Context, examID uint) ([]model.Attempt, error)
	FindCompletedByExam(ctx context.Context, examID uint) ([]model.Attempt, error)
	FindInProgressWithExam(ctx context.Context) ([]model.Attempt, error)

	// Touch bumps updated_at on an in-progress attempt. It reports false when
	// the attempt is missing or already completed, which callers use as the
	// write guard for responses.
	Touch(ctx context.Context, id uint, now time.Time) (bool, error)
	// MarkCompleted performs the single in_progress -> completed transition.
	// It reports false when another caller got there first.
	MarkCompleted(ctx context.Context, id uint, now time.Time, reason model.SubmitReason) (bool, error)
	SaveScore(ctx context.Context, id uint, score ScoreFields) (bool, error)

	SetPercentile(ctx context.Context, id uint, percentile float64) error
	MarkPublished(ctx context.Context, examID uint) error
	ClearPublication(ctx context.Context, examID uint) error

	WithTx(tx *gorm.DB) AttemptRepository
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

// Create inserts the attempt under a share lock on its exam row, which keeps
// it from interleaving with a question being added. Run it inside a
// transaction (WithTx) for the lock to cover the insert.
func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	db := r.db.WithContext(ctx)
	var exam model.Exam
	if err := db.Clauses(clause.Locking{Strength: "SHARE"}).Select("id").First(&exam, attempt.ExamID).Error; err != nil {
		return translate(err)
	}
	return db.Omit(clause.Associations).Create(attempt).Error
}

func (r *attemptRepository) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindActive(ctx context.Context, studentID, examID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ? AND status = ?", studentID, examID, model.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByStudent(ctx context.Context, studentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("start_time DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByExam(ctx context.Context, examID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).Where("exam_id = ?", examID).Order("net_marks DESC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindCompletedByExam(ctx context.Context, examID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Where("exam_id = ? AND status = ?", examID, model.AttemptCompleted).
		Order("id ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindInProgressWithExam(ctx context.Context) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("status = ?", model.AttemptInProgress).
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Touch(ctx context.Context, id uint, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptInProgress).
		UpdateColumn("updated_at", now)
	return res.RowsAffected == 1, res.Error
}

func (r *attemptRepository) MarkCompleted(ctx context.Context, id uint, now time.Time, reason model.SubmitReason) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":        model.AttemptCompleted,
			"end_time":      now,
			"active_key":    gorm.Expr("NULL"),
			"submit_reason": reason,
			"updated_at":    now,
		})
	return res.RowsAffected == 1, res.Error
}

// SaveScore writes the scoring output once; a second call is a no-op.
func (r *attemptRepository) SaveScore(ctx context.Context, id uint, score ScoreFields) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND result_calculated = ?", id, false).
		Updates(map[string]interface{}{
			"correct_count":     score.CorrectCount,
			"wrong_count":       score.WrongCount,
			"skipped_count":     score.SkippedCount,
			"net_marks":         score.NetMarks,
			"result_calculated": true,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *attemptRepository) SetPercentile(ctx context.Context, id uint, percentile float64) error {
	return r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ?", id).
		UpdateColumn("percentile", percentile).Error
}

func (r *attemptRepository) MarkPublished(ctx context.Context, examID uint) error {
	return r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("exam_id = ? AND status = ?", examID, model.AttemptCompleted).
		UpdateColumn("result_published", true).Error
}

// ClearPublication hides results again. Scoring fields are left untouched.
func (r *attemptRepository) ClearPublication(ctx context.Context, examID uint) error {
	return r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("exam_id = ?", examID).
		UpdateColumns(map[string]interface{}{
			"result_published": false,
			"percentile":       gorm.Expr("NULL"),
		}).Error
}
