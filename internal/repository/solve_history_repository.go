package repository

import (
	"github.com/elect10/sesac-hackathon/internal/model"

	"gorm.io/gorm"
)

type SolveHistoryRepository struct {
	DB *gorm.DB
}

func NewSolveHistoryRepository(db *gorm.DB) *SolveHistoryRepository {
	return &SolveHistoryRepository{DB: db}
}

func (r *SolveHistoryRepository) Create(history *model.SolveHistory) error {
	return r.DB.Create(history).Error
}

func (r *SolveHistoryRepository) ListByUserID(userID uint) ([]model.SolveHistory, error) {
	var histories []model.SolveHistory
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
