package service

import (
	"time"

	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"
)

// DefaultLanguageLevel 언어 수준 고정값.
// TODO: 언어 수준 기준표가 확정되면 정답률/연령 기반 산정으로 교체
const DefaultLanguageLevel = "beginner"

// FeedbackEntry 개인화 컨텍스트에 포함되는 보호자 피드백 항목
type FeedbackEntry struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProblemContext 문제 생성 요청에 그대로 실리는 개인화 컨텍스트
type ProblemContext struct {
	Age           int             `json:"age"` // 개월 수
	Accuracy      float64         `json:"accuracy"`
	Interests     []string        `json:"interests"`
	LanguageLevel string          `json:"languageLevel"`
	LanguageGoals *string         `json:"languageGoals,omitempty"`
	Feedback      []FeedbackEntry `json:"feedback"`
}

type PersonalizationService struct {
	SolveHistoryRepo   *repository.SolveHistoryRepository
	ParentFeedbackRepo *repository.ParentFeedbackRepository
	Achievement        *AchievementService
}

func NewPersonalizationService(
	solveHistoryRepo *repository.SolveHistoryRepository,
	parentFeedbackRepo *repository.ParentFeedbackRepository,
	achievement *AchievementService,
) *PersonalizationService {
	return &PersonalizationService{
		SolveHistoryRepo:   solveHistoryRepo,
		ParentFeedbackRepo: parentFeedbackRepo,
		Achievement:        achievement,
	}
}

// BuildContext 사용자 프로필과 풀이 이력으로 개인화 컨텍스트를 만든다.
// 정답률 계산 시마다 업적 갱신 여부도 함께 확인한다. 이력이 없어도
// 정답률 0으로 업적 확인을 수행한다(첫 호출이면 기준 업적이 생성된다).
func (s *PersonalizationService) BuildContext(user *model.User) (*ProblemContext, error) {
	histories, err := s.SolveHistoryRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	acc := CalculateAccuracy(histories)

	if err := s.Achievement.CheckAndCreateAchievement(user.ID, acc.Rate); err != nil {
		return nil, err
	}

	feedbacks, err := s.ParentFeedbackRepo.ListByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]FeedbackEntry, len(feedbacks))
	for i, f := range feedbacks {
		entries[i] = FeedbackEntry{
			Content:   f.Content,
			CreatedAt: f.CreatedAt,
		}
	}

	return &ProblemContext{
		Age:           AgeInMonths(user.BirthDate, time.Now()),
		Accuracy:      acc.Rate,
		Interests:     user.InterestList(),
		LanguageLevel: DefaultLanguageLevel,
		LanguageGoals: user.LanguageGoals,
		Feedback:      entries,
	}, nil
}

// AgeInMonths 생년월일과 기준일 사이의 개월 수.
// 연-월 차이만 보고 일은 무시한다.
func AgeInMonths(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if months < 0 {
		months = -months
	}
	return months
}
