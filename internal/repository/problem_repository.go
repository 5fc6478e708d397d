package repository

import (
	"github.com/elect10/sesac-hackathon/internal/model"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

func (r *ProblemRepository) Create(problem *model.Problem) error {
	return r.DB.Create(problem).Error
}

// FindByIDAndUserID 본인 소유 문제만 조회된다
func (r *ProblemRepository) FindByIDAndUserID(id string, userID uint) (*model.Problem, error) {
	var problem model.Problem
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&problem).Error
	if err != nil {
		return nil, err
	}
	return &problem, nil
}

func (r *ProblemRepository) ListByUserID(userID uint, limit int) ([]model.Problem, error) {
	var problems []model.Problem
	q := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&problems).Error
	if err != nil {
		return nil, err
	}
	return problems, nil
}
