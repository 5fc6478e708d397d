package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elect10/sesac-hackathon/internal/config"
	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"
	"github.com/elect10/sesac-hackathon/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatTestStack(t *testing.T, aiBaseURL string) (*gorm.DB, *ChatService) {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	historyRepo := repository.NewSolveHistoryRepository(db)
	feedbackRepo := repository.NewParentFeedbackRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	personalization := NewPersonalizationService(
		historyRepo,
		feedbackRepo,
		NewAchievementService(achievementRepo),
	)
	ai := NewAIService(config.AIConfig{BaseURL: aiBaseURL})

	svc := NewChatService(userRepo, problemRepo, historyRepo, personalization, ai, nil, nil)
	return db, svc
}

func createChatTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	// 월말 AddDate 정규화를 피하려고 연-월 성분으로 만든다
	now := time.Now()
	user := &model.User{
		Name:      "지우",
		Email:     "jiwoo@example.com",
		Password:  "hashed",
		BirthDate: time.Date(now.Year()-3, now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	user.SetInterests([]string{"공룡", "기차"})
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestChatService_GenerateProblem(t *testing.T) {
	var gotContext ProblemContext
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/generate_problem", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotContext))
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "prob-gen-1",
			"question":   "기차는 영어로?",
			"answer":     "train",
			"image":      "img-base64",
			"image_path": "images/prob-gen-1.png",
			"whole_text": "whole",
		})
	}))
	defer server.Close()

	db, svc := newChatTestStack(t, server.URL)
	user := createChatTestUser(t, db)

	result, err := svc.GenerateProblem(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, "prob-gen-1", result.ID)
	assert.Equal(t, "기차는 영어로?", result.Question)
	assert.Equal(t, "img-base64", result.Image)

	// 개인화 컨텍스트가 프로필 기준으로 구성됐는지
	assert.Equal(t, []string{"공룡", "기차"}, gotContext.Interests)
	assert.Equal(t, 36, gotContext.Age)
	assert.Zero(t, gotContext.Accuracy)

	// 문제가 정답과 함께 저장됐는지
	var stored model.Problem
	require.NoError(t, db.First(&stored, "id = ?", "prob-gen-1").Error)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, "train", stored.Answer)
	assert.Equal(t, "whole", stored.WholeText)

	// 첫 컨텍스트 구성으로 기준 업적이 생성됐는지
	var links int64
	require.NoError(t, db.Model(&model.UserAchievement{}).Where("user_id = ?", user.ID).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestChatService_GenerateProblem_UserNotFound(t *testing.T) {
	_, svc := newChatTestStack(t, "http://127.0.0.1:0")

	_, err := svc.GenerateProblem(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestChatService_GenerateProblem_AIServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	db, svc := newChatTestStack(t, server.URL)
	user := createChatTestUser(t, db)

	_, err := svc.GenerateProblem(context.Background(), user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrAIServer)

	// 실패한 요청으로는 문제가 저장되지 않는다
	var count int64
	require.NoError(t, db.Model(&model.Problem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChatService_LatestProblem_DBFallback(t *testing.T) {
	db, svc := newChatTestStack(t, "http://127.0.0.1:0")
	user := createChatTestUser(t, db)

	require.NoError(t, db.Create(&model.Problem{
		ID: "old-1", UserID: user.ID, Question: "오래된 문제", Answer: "a",
	}).Error)
	newer := &model.Problem{ID: "new-1", UserID: user.ID, Question: "새 문제", Answer: "b"}
	require.NoError(t, db.Create(newer).Error)
	require.NoError(t, db.Model(newer).Update("created_at", time.Now().Add(time.Minute)).Error)

	result, err := svc.LatestProblem(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-1", result.ID)
	assert.Equal(t, "새 문제", result.Question)
}

func TestChatService_LatestProblem_None(t *testing.T) {
	db, svc := newChatTestStack(t, "http://127.0.0.1:0")
	user := createChatTestUser(t, db)

	_, err := svc.LatestProblem(context.Background(), user.ID)
	assert.ErrorIs(t, err, util.ErrProblemNotFound)
}

func TestChatService_GenerateFeedback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/generate_feedback", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		require.Equal(t, "prob-fb-1", r.FormValue("problemId"))
		require.Equal(t, `"banana"`, r.FormValue("answer"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"is_correct": true,
			"feedback":   "정확하게 말했어요!",
			"voice_path": "voices/stored.wav",
		})
	}))
	defer server.Close()

	db, svc := newChatTestStack(t, server.URL)
	user := createChatTestUser(t, db)
	require.NoError(t, db.Create(&model.Problem{
		ID: "prob-fb-1", UserID: user.ID, Question: "q", Answer: "banana",
	}).Error)

	result, err := svc.GenerateFeedback(context.Background(), user.ID, "prob-fb-1", "rec.wav", strings.NewReader("voice-bytes"))
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, "정확하게 말했어요!", result.Feedback)
	assert.Equal(t, "voices/stored.wav", result.VoicePath)

	// 풀이 이력이 응답 전에 동기로 기록된다
	var history model.SolveHistory
	require.NoError(t, db.Where("user_id = ? AND problem_id = ?", user.ID, "prob-fb-1").First(&history).Error)
	assert.True(t, history.IsCorrect)
	assert.Equal(t, "정확하게 말했어요!", history.Feedback)
	assert.Equal(t, "voices/stored.wav", history.VoicePath)
}

func TestChatService_GenerateFeedback_ForeignProblem(t *testing.T) {
	db, svc := newChatTestStack(t, "http://127.0.0.1:0")
	owner := createChatTestUser(t, db)
	require.NoError(t, db.Create(&model.Problem{
		ID: "prob-owned", UserID: owner.ID, Question: "q", Answer: "a",
	}).Error)

	other := &model.User{Name: "민준", Email: "minjun@example.com", Password: "hashed", BirthDate: time.Date(time.Now().Year()-4, time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.GenerateFeedback(context.Background(), other.ID, "prob-owned", "rec.wav", strings.NewReader("voice"))
	assert.ErrorIs(t, err, util.ErrProblemNotFound)

	var count int64
	require.NoError(t, db.Model(&model.SolveHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChatService_GenerateFeedback_EmptyVoice(t *testing.T) {
	db, svc := newChatTestStack(t, "http://127.0.0.1:0")
	user := createChatTestUser(t, db)
	require.NoError(t, db.Create(&model.Problem{
		ID: "prob-empty", UserID: user.ID, Question: "q", Answer: "a",
	}).Error)

	_, err := svc.GenerateFeedback(context.Background(), user.ID, "prob-empty", "rec.wav", strings.NewReader(""))
	assert.ErrorIs(t, err, util.ErrInvalidVoice)
}

func TestChatService_GenerateFeedback_AIServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	db, svc := newChatTestStack(t, server.URL)
	user := createChatTestUser(t, db)
	require.NoError(t, db.Create(&model.Problem{
		ID: "prob-down", UserID: user.ID, Question: "q", Answer: "a",
	}).Error)

	_, err := svc.GenerateFeedback(context.Background(), user.ID, "prob-down", "rec.wav", strings.NewReader("voice"))
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrAIServer)

	// 채점 실패 시 이력도 남지 않는다
	var count int64
	require.NoError(t, db.Model(&model.SolveHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}
