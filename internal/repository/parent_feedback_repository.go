package repository

import (
	"github.com/elect10/sesac-hackathon/internal/model"

	"gorm.io/gorm"
)

type ParentFeedbackRepository struct {
	DB *gorm.DB
}

func NewParentFeedbackRepository(db *gorm.DB) *ParentFeedbackRepository {
	return &ParentFeedbackRepository{DB: db}
}

func (r *ParentFeedbackRepository) Create(feedback *model.ParentFeedback) error {
	return r.DB.Create(feedback).Error
}

// ListByUserID 최신 피드백이 먼저 오도록 정렬
func (r *ParentFeedbackRepository) ListByUserID(userID uint) ([]model.ParentFeedback, error) {
	var feedbacks []model.ParentFeedback
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}
