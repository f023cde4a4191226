package repository

import (
	"context"

	"github.com/lshigami/ExamPortal/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	FindAssignedToStudent(ctx context.Context, studentID uint) ([]model.Exam, error)
	SetActive(ctx context.Context, id uint, active bool) error
	SetAnswerKeyPublished(ctx context.Context, id uint, published bool) error
	SetResultDeclared(ctx context.Context, id uint, declared bool) error
	WithTx(tx *gorm.DB) ExamRepository
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) WithTx(tx *gorm.DB) ExamRepository {
	return &examRepository{db: tx}
}

// Create inserts the exam and any questions attached to it.
func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, translate(err)
	}
	return &exam, nil
}

func (r *examRepository) FindAssignedToStudent(ctx context.Context, studentID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.WithContext(ctx).
		Joins("JOIN exam_assignments ON exam_assignments.exam_id = exams.id").
		Where("exam_assignments.student_id = ?", studentID).
		Order("exams.created_at DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.updateFlag(ctx, id, "is_active", active)
}

func (r *examRepository) SetAnswerKeyPublished(ctx context.Context, id uint, published bool) error {
	return r.updateFlag(ctx, id, "answer_key_published", published)
}

func (r *examRepository) SetResultDeclared(ctx context.Context, id uint, declared bool) error {
	return r.updateFlag(ctx, id, "result_declared", declared)
}

func (r *examRepository) updateFlag(ctx context.Context, id uint, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&model.Exam{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
