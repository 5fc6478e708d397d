package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"
	"github.com/elect10/sesac-hackathon/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HighestAnswerRateTitle "최고 정답률" 업적 제목
const HighestAnswerRateTitle = "Highest Answer Rate"

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository

	// 사용자별 직렬화. 같은 사용자의 조회-갱신이 겹치면 낮은 값이
	// 높은 값을 덮어쓰거나 업적이 중복 생성될 수 있어 잠금으로 막는다.
	userLocks sync.Map // map[uint]*sync.Mutex
}

func NewAchievementService(achievementRepo *repository.AchievementRepository) *AchievementService {
	return &AchievementService{AchievementRepo: achievementRepo}
}

func (s *AchievementService) userLock(userID uint) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CheckAndCreateAchievement 사용자의 "최고 정답률" 업적을 확인하고 필요 시 생성/갱신한다.
// 기존 level보다 낮거나 같은 값이면 아무것도 하지 않는다. level은 호출을 거듭해도
// 감소하지 않는다.
func (s *AchievementService) CheckAndCreateAchievement(userID uint, accuracy float64) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.AchievementRepo.FindLatestByUserID(userID, HighestAnswerRateTitle)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		achievement := &model.Achievement{
			Title:       HighestAnswerRateTitle,
			Description: formatAccuracy(accuracy),
			Level:       accuracy,
		}
		if err := s.AchievementRepo.CreateWithLink(userID, achievement); err != nil {
			return err
		}
		logger.Log.Info("최고 정답률 업적 생성",
			zap.Uint("userId", userID),
			zap.Float64("level", accuracy),
		)
		return nil
	}
	if err != nil {
		return err
	}

	if accuracy <= existing.Achievement.Level {
		return nil
	}

	updated := existing.Achievement
	updated.Title = HighestAnswerRateTitle
	updated.Description = formatAccuracy(accuracy)
	updated.Level = accuracy

	improved, err := s.AchievementRepo.UpdateIfImproved(&updated)
	if err != nil {
		return err
	}
	if improved {
		logger.Log.Info("최고 정답률 업적 갱신",
			zap.Uint("userId", userID),
			zap.Float64("previousLevel", existing.Achievement.Level),
			zap.Float64("level", accuracy),
		)
	}
	return nil
}

// ListUserAchievements level 높은 순으로 사용자의 업적을 조회한다
func (s *AchievementService) ListUserAchievements(userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.ListByUserID(userID)
}

// formatAccuracy 정답률을 백분율 소수 둘째 자리까지 표기
func formatAccuracy(accuracy float64) string {
	return fmt.Sprintf("최고 정답률 %.2f%%", accuracy*100)
}
