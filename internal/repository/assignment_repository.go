package repository

import (
	"context"

	"github.com/lshigami/ExamPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository interface {
	Assign(ctx context.Context, examID uint, studentIDs []uint) error
	IsAssigned(ctx context.Context, studentID, examID uint) (bool, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Assign is idempotent: pairs that already exist are left alone.
func (r *assignmentRepository) Assign(ctx context.Context, examID uint, studentIDs []uint) error {
	if len(studentIDs) == 0 {
		return nil
	}
	rows := make([]model.ExamAssignment, 0, len(studentIDs))
	for _, sid := range studentIDs {
		rows = append(rows, model.ExamAssignment{StudentID: sid, ExamID: examID})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *assignmentRepository) IsAssigned(ctx context.Context, studentID, examID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ExamAssignment{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count > 0, err
}
