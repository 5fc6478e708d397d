package service

import (
	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"
)

// ParentFeedbackService 보호자 피드백 등록/조회
type ParentFeedbackService struct {
	ParentFeedbackRepo *repository.ParentFeedbackRepository
}

func NewParentFeedbackService(parentFeedbackRepo *repository.ParentFeedbackRepository) *ParentFeedbackService {
	return &ParentFeedbackService{ParentFeedbackRepo: parentFeedbackRepo}
}

type ParentFeedbackRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *ParentFeedbackService) Create(userID uint, req ParentFeedbackRequest) (*model.ParentFeedback, error) {
	feedback := &model.ParentFeedback{
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.ParentFeedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *ParentFeedbackService) List(userID uint) ([]model.ParentFeedback, error) {
	return s.ParentFeedbackRepo.ListByUserID(userID)
}
