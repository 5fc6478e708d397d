package service

import (
	"testing"
	"time"

	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPersonalizationService(t *testing.T) (*PersonalizationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPersonalizationService(
		repository.NewSolveHistoryRepository(db),
		repository.NewParentFeedbackRepository(db),
		NewAchievementService(repository.NewAchievementRepository(db)),
	)
	return svc, db
}

func TestAgeInMonths(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"정확히 24개월", time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), 24},
		{"일은 무시", time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), 24},
		{"같은 달", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 0},
		{"연도만 다름", time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC), 36},
		{"월 차이 포함", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 29},
		{"미래 생일도 절댓값", time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeInMonths(tt.birth, now))
		})
	}
}

func TestBuildContext_EmptyHistory(t *testing.T) {
	svc, db := newPersonalizationService(t)

	now := time.Now()
	user := &model.User{
		Name:      "도윤",
		Email:     "doyun@example.com",
		Password:  "x",
		BirthDate: time.Date(now.Year()-2, now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	user.SetInterests([]string{"공룡", "자동차"})
	require.NoError(t, db.Create(user).Error)

	pc, err := svc.BuildContext(user)
	require.NoError(t, err)

	assert.InDelta(t, 0, pc.Accuracy, 1e-9)
	assert.Equal(t, 24, pc.Age)
	assert.Equal(t, []string{"공룡", "자동차"}, pc.Interests)
	assert.Equal(t, DefaultLanguageLevel, pc.LanguageLevel)
	assert.Nil(t, pc.LanguageGoals)
	assert.Empty(t, pc.Feedback)

	// 이력이 없어도 정답률 0으로 기준 업적이 생성된다
	ua, err := svc.Achievement.AchievementRepo.FindLatestByUserID(user.ID, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0, ua.Achievement.Level, 1e-9)
}

func TestBuildContext_WithHistoryAndFeedback(t *testing.T) {
	svc, db := newPersonalizationService(t)

	// 월말에 AddDate로 만들면 넘침 정규화(8/31 - 2개월 → 7/1)로 개월 수가
	// 달라지므로 연-월 성분으로 직접 만든다
	now := time.Now()
	user := &model.User{
		Name:      "서연",
		Email:     "seoyeon@example.com",
		Password:  "x",
		BirthDate: time.Date(now.Year()-3, now.Month()-2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(user).Error)

	for _, correct := range []bool{true, true, false, true} {
		require.NoError(t, db.Create(&model.SolveHistory{UserID: user.ID, IsCorrect: correct}).Error)
	}

	older := &model.ParentFeedback{UserID: user.ID, Content: "발음이 많이 늘었어요"}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, db.Create(&model.ParentFeedback{UserID: user.ID, Content: "문장이 길어지면 어려워해요"}).Error)

	pc, err := svc.BuildContext(user)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, pc.Accuracy, 1e-9)
	assert.Equal(t, 38, pc.Age)

	require.Len(t, pc.Feedback, 2)
	// 최신 피드백이 먼저
	assert.Equal(t, "문장이 길어지면 어려워해요", pc.Feedback[0].Content)
	assert.Equal(t, "발음이 많이 늘었어요", pc.Feedback[1].Content)

	// 업적도 함께 갱신된다
	ua, err := svc.Achievement.AchievementRepo.FindLatestByUserID(user.ID, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, ua.Achievement.Level, 1e-9)
	assert.Contains(t, ua.Achievement.Description, "75.00%")
}

func TestBuildContext_InterestsEmpty(t *testing.T) {
	svc, db := newPersonalizationService(t)

	now := time.Now()
	user := &model.User{
		Name:      "지호",
		Email:     "jiho@example.com",
		Password:  "x",
		BirthDate: time.Date(now.Year()-2, now.Month()-6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(user).Error)

	pc, err := svc.BuildContext(user)
	require.NoError(t, err)

	// null이 아닌 빈 배열로 직렬화되어야 한다
	assert.NotNil(t, pc.Interests)
	assert.Empty(t, pc.Interests)
}
