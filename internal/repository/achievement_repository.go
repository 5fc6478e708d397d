package repository

import (
	"github.com/elect10/sesac-hackathon/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// FindLatestByUserID 사용자의 해당 제목 업적 중 level이 가장 높은 연결 1건을 조회한다.
// 정상적으로는 제목당 1건이지만 중복이 있어도 최고 level을 선택한다. 제목으로
// 거르지 않으면 다른 종류의 업적이 정답률 비교에 섞여 들어간다.
func (r *AchievementRepository) FindLatestByUserID(userID uint, title string) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	err := r.DB.
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ? AND achievements.title = ?", userID, title).
		Order("achievements.level desc").
		Preload("Achievement").
		First(&ua).Error
	if err != nil {
		return nil, err
	}
	return &ua, nil
}

// CreateWithLink 업적과 사용자 연결을 한 트랜잭션으로 생성한다
func (r *AchievementRepository) CreateWithLink(userID uint, achievement *model.Achievement) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(achievement).Error; err != nil {
			return err
		}
		link := &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
		}
		return tx.Create(link).Error
	})
}

// UpdateIfImproved level이 기존 값보다 클 때만 갱신한다.
// WHERE 절의 level 비교가 동시 요청 간 역전 방지의 최종 방어선이다.
func (r *AchievementRepository) UpdateIfImproved(achievement *model.Achievement) (bool, error) {
	result := r.DB.Model(&model.Achievement{}).
		Where("id = ? AND level < ?", achievement.ID, achievement.Level).
		Updates(map[string]interface{}{
			"title":       achievement.Title,
			"description": achievement.Description,
			"level":       achievement.Level,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AchievementRepository) ListByUserID(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("achievements.level desc").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}
