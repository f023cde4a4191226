package repository

import (
	"context"

	"github.com/lshigami/ExamPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository reads the question bank. Questions are ordered by
// order_in_exam everywhere they are listed.
type QuestionRepository interface {
	// Create adds a question to an exam nobody has started and raises the
	// exam's total marks in the same transaction. It returns
	// ErrExamHasAttempts once an attempt exists.
	Create(ctx context.Context, question *model.Question) error
	FindByExam(ctx context.Context, examID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Attempt creation holds a share lock on the same exam row, so the
		// count below cannot miss an attempt that is being inserted.
		var exam model.Exam
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&exam, question.ExamID).Error
		if err != nil {
			return translate(err)
		}

		var attempts int64
		if err := tx.Model(&model.Attempt{}).Where("exam_id = ?", question.ExamID).Count(&attempts).Error; err != nil {
			return err
		}
		if attempts > 0 {
			return ErrExamHasAttempts
		}

		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return tx.Model(&model.Exam{}).
			Where("id = ?", question.ExamID).
			UpdateColumn("total_marks", gorm.Expr("total_marks + ?", question.Marks)).Error
	})
}

func (r *questionRepository) FindByExam(ctx context.Context, examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("order_in_exam ASC, id ASC").
		Find(&questions).Error
	return questions, err
}
