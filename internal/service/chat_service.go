package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/elect10/sesac-hackathon/internal/model"
	"github.com/elect10/sesac-hackathon/internal/repository"
	"github.com/elect10/sesac-hackathon/internal/util"
	"github.com/elect10/sesac-hackathon/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	latestProblemKeyPrefix = "chat:latest_problem:"
	latestProblemTTL       = 24 * time.Hour
)

// ChatService 문제 생성과 채점 두 워크플로를 조율한다
type ChatService struct {
	UserRepo         *repository.UserRepository
	ProblemRepo      *repository.ProblemRepository
	SolveHistoryRepo *repository.SolveHistoryRepository
	Personalization  *PersonalizationService
	AI               *AIService
	Storage          *StorageService
	Redis            *redis.Client
}

func NewChatService(
	userRepo *repository.UserRepository,
	problemRepo *repository.ProblemRepository,
	solveHistoryRepo *repository.SolveHistoryRepository,
	personalization *PersonalizationService,
	ai *AIService,
	storage *StorageService,
	rdb *redis.Client,
) *ChatService {
	return &ChatService{
		UserRepo:         userRepo,
		ProblemRepo:      problemRepo,
		SolveHistoryRepo: solveHistoryRepo,
		Personalization:  personalization,
		AI:               ai,
		Storage:          storage,
		Redis:            rdb,
	}
}

// ProblemResult 문제 생성 응답으로 내려가는 부분
type ProblemResult struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Image    string `json:"image"`
}

// GenerateProblem 사용자 조회 → 개인화 컨텍스트 구성(업적 확인 포함) →
// AI 서버 호출 → 문제 저장 순으로 진행한다.
func (s *ChatService) GenerateProblem(ctx context.Context, userID uint) (*ProblemResult, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	pc, err := s.Personalization.BuildContext(user)
	if err != nil {
		return nil, err
	}

	resp, err := s.AI.GenerateProblem(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("문제 생성 요청 실패: %w", err)
	}

	problem := &model.Problem{
		ID:        resp.ID,
		UserID:    user.ID,
		Question:  resp.Question,
		Answer:    resp.Answer,
		ImagePath: resp.ImagePath,
		WholeText: resp.WholeText,
	}
	if err := s.ProblemRepo.Create(problem); err != nil {
		return nil, err
	}

	result := &ProblemResult{
		ID:       resp.ID,
		Question: resp.Question,
		Image:    resp.Image,
	}
	s.cacheLatestProblem(ctx, userID, result)

	return result, nil
}

// LatestProblem 캐시에서 최근 생성 문제를 조회하고, 없으면 DB로 폴백한다
func (s *ChatService) LatestProblem(ctx context.Context, userID uint) (*ProblemResult, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, latestProblemKey(userID)).Result()
		if err == nil {
			var result ProblemResult
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return &result, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("최근 문제 캐시 조회 실패", zap.Uint("userId", userID), zap.Error(err))
		}
	}

	problems, err := s.ProblemRepo.ListByUserID(userID, 1)
	if err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, util.ErrProblemNotFound
	}
	return &ProblemResult{
		ID:       problems[0].ID,
		Question: problems[0].Question,
	}, nil
}

// FeedbackResult 채점 응답으로 내려가는 부분
type FeedbackResult struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
	VoicePath string `json:"voicePath"`
}

// GenerateFeedback 본인 문제 확인 → 음성과 정답을 AI 서버로 전송 → 채점 결과로
// 풀이 이력을 기록한다. 이력 기록은 응답 전에 동기로 완료되며 실패 시 요청도 실패한다.
func (s *ChatService) GenerateFeedback(ctx context.Context, userID uint, problemID, voiceFilename string, voice io.Reader) (*FeedbackResult, error) {
	problem, err := s.ProblemRepo.FindByIDAndUserID(problemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProblemNotFound
	}
	if err != nil {
		return nil, err
	}

	// AI 전송과 보관용 업로드에 같은 데이터를 쓰므로 메모리에 올려둔다
	voiceData, err := io.ReadAll(voice)
	if err != nil {
		return nil, err
	}
	if len(voiceData) == 0 {
		return nil, util.ErrInvalidVoice
	}

	resp, err := s.AI.GenerateFeedback(ctx, problem.ID, problem.Answer, voiceFilename, bytes.NewReader(voiceData))
	if err != nil {
		return nil, fmt.Errorf("채점 요청 실패: %w", err)
	}

	s.archiveVoice(ctx, userID, voiceFilename, voiceData)

	history := &model.SolveHistory{
		UserID:    userID,
		ProblemID: problem.ID,
		IsCorrect: resp.IsCorrect,
		Feedback:  resp.Feedback,
		VoicePath: resp.VoicePath,
	}
	if err := s.SolveHistoryRepo.Create(history); err != nil {
		return nil, err
	}

	return &FeedbackResult{
		IsCorrect: resp.IsCorrect,
		Feedback:  resp.Feedback,
		VoicePath: resp.VoicePath,
	}, nil
}

// archiveVoice 녹음 원본을 저장소에 보관한다. 채점 결과에는 영향 없는 베스트에포트.
func (s *ChatService) archiveVoice(ctx context.Context, userID uint, filename string, data []byte) {
	if s.Storage == nil {
		return
	}
	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("voices/%d/%s%s", userID, time.Now().Format("20060102150405"), ext)
	if _, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), util.MimeOctetStream); err != nil {
		logger.Log.Warn("음성 원본 보관 실패", zap.Uint("userId", userID), zap.Error(err))
	}
}

func (s *ChatService) cacheLatestProblem(ctx context.Context, userID uint, result *ProblemResult) {
	if s.Redis == nil {
		return
	}
	val, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, latestProblemKey(userID), val, latestProblemTTL).Err(); err != nil {
		logger.Log.Warn("최근 문제 캐시 저장 실패", zap.Uint("userId", userID), zap.Error(err))
	}
}

func latestProblemKey(userID uint) string {
	return fmt.Sprintf("%s%d", latestProblemKeyPrefix, userID)
}
