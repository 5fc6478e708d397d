package service

import (
	"sync"
	"testing"

	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAchievementService(t *testing.T) (*AchievementService, *repository.AchievementRepository) {
	t.Helper()
	repo := repository.NewAchievementRepository(newTestDB(t))
	return NewAchievementService(repo), repo
}

func TestCheckAndCreateAchievement_FirstCall(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.55))

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.Equal(t, HighestAnswerRateTitle, ua.Achievement.Title)
	assert.InDelta(t, 0.55, ua.Achievement.Level, 1e-9)
	assert.Contains(t, ua.Achievement.Description, "55.00%")

	// Achievement와 UserAchievement가 정확히 1건씩
	var achievementCount, linkCount int64
	repo.DB.Model(&model.Achievement{}).Count(&achievementCount)
	repo.DB.Model(&model.UserAchievement{}).Count(&linkCount)
	assert.EqualValues(t, 1, achievementCount)
	assert.EqualValues(t, 1, linkCount)
}

func TestCheckAndCreateAchievement_Improvement(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.40))
	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.55))

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.55, ua.Achievement.Level, 1e-9)
	assert.Contains(t, ua.Achievement.Description, "55.00%")

	// 갱신이지 새 업적 생성이 아니다
	var achievementCount int64
	repo.DB.Model(&model.Achievement{}).Count(&achievementCount)
	assert.EqualValues(t, 1, achievementCount)
}

func TestCheckAndCreateAchievement_NoImprovement(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.55))
	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.30))

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.55, ua.Achievement.Level, 1e-9)
	assert.Contains(t, ua.Achievement.Description, "55.00%")
}

func TestCheckAndCreateAchievement_EqualValueIsNoOp(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.55))
	before, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.55))
	after, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)

	assert.Equal(t, before.Achievement.UpdatedAt, after.Achievement.UpdatedAt)
}

func TestCheckAndCreateAchievement_Monotonic(t *testing.T) {
	svc, repo := newAchievementService(t)

	values := []float64{0.2, 0.8, 0.5, 0.8, 0.1, 0.75}
	for _, v := range values {
		require.NoError(t, svc.CheckAndCreateAchievement(7, v))
	}

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, ua.Achievement.Level, 1e-9)
}

func TestCheckAndCreateAchievement_ZeroAccuracyBaseline(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0))

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0, ua.Achievement.Level, 1e-9)
	assert.Contains(t, ua.Achievement.Description, "0.00%")
}

func TestCheckAndCreateAchievement_UsersAreIndependent(t *testing.T) {
	svc, repo := newAchievementService(t)

	require.NoError(t, svc.CheckAndCreateAchievement(1, 0.9))
	require.NoError(t, svc.CheckAndCreateAchievement(2, 0.3))

	ua1, err := repo.FindLatestByUserID(1, HighestAnswerRateTitle)
	require.NoError(t, err)
	ua2, err := repo.FindLatestByUserID(2, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, ua1.Achievement.Level, 1e-9)
	assert.InDelta(t, 0.3, ua2.Achievement.Level, 1e-9)
}

func TestCheckAndCreateAchievement_ConcurrentCalls(t *testing.T) {
	svc, repo := newAchievementService(t)

	// 첫 생성은 직렬로 해두고 갱신 경합만 본다
	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.01))

	values := []float64{0.2, 0.9, 0.5, 0.7, 0.3, 0.85, 0.6, 0.4}
	var wg sync.WaitGroup
	for _, v := range values {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			_ = svc.CheckAndCreateAchievement(7, v)
		}(v)
	}
	wg.Wait()

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, ua.Achievement.Level, 1e-9)

	var linkCount int64
	repo.DB.Model(&model.UserAchievement{}).Where("user_id = ?", 7).Count(&linkCount)
	assert.EqualValues(t, 1, linkCount)
}

func TestCheckAndCreateAchievement_OtherTitleDoesNotInterfere(t *testing.T) {
	svc, repo := newAchievementService(t)

	// 다른 종류의 업적이 더 높은 level로 있어도 정답률 비교에 끼어들면 안 된다
	require.NoError(t, repo.CreateWithLink(7, &model.Achievement{Title: "Streak", Level: 0.99}))

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.5))

	ua, err := repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ua.Achievement.Level, 1e-9)

	require.NoError(t, svc.CheckAndCreateAchievement(7, 0.6))
	ua, err = repo.FindLatestByUserID(7, HighestAnswerRateTitle)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, ua.Achievement.Level, 1e-9)
}

func TestFormatAccuracy(t *testing.T) {
	assert.Equal(t, "최고 정답률 55.00%", formatAccuracy(0.55))
	assert.Equal(t, "최고 정답률 0.00%", formatAccuracy(0))
	assert.Equal(t, "최고 정답률 100.00%", formatAccuracy(1))
	assert.Equal(t, "최고 정답률 33.33%", formatAccuracy(1.0/3.0))
}
