package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/elect10/sesac-hackathon/internal/config"
	"github.com/elect10/sesac-hackathon/internal/util"
	"github.com/elect10/sesac-hackathon/pkg/monitoring"
)

const defaultAIRequestTimeout = 30 * time.Second

// AIService 외부 AI 서버(문제 생성/채점) HTTP 클라이언트.
// 설정 핫리로드를 지원하므로 base URL은 호출 시점에 읽는다.
type AIService struct {
	mu     sync.RWMutex
	cfg    config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultAIRequestTimeout
	}
	return &AIService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// UpdateConfig 설정 리로드 콜백에서 호출된다
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *AIService) baseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.BaseURL
}

// GenerateProblemResponse AI 서버 문제 생성 응답
type GenerateProblemResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Image     string `json:"image"`
	ImagePath string `json:"image_path"`
	WholeText string `json:"whole_text"`
}

// GenerateProblem 개인화 컨텍스트를 보내 새 문제를 요청한다
func (s *AIService) GenerateProblem(ctx context.Context, pc *ProblemContext) (*GenerateProblemResponse, error) {
	jsonData, err := json.Marshal(pc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL()+"/chat/generate_problem", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.ObserveAIRequest("generate_problem", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", util.ErrAIServer, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveAIRequest("generate_problem", resp.StatusCode, time.Since(start))

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d): %s", util.ErrAIServer, resp.StatusCode, string(body))
	}

	var result GenerateProblemResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, fmt.Errorf("AI server returned a problem without id")
	}

	return &result, nil
}

// GenerateFeedbackResponse AI 서버 채점 응답
type GenerateFeedbackResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
	VoicePath string `json:"voice_path"`
}

// GenerateFeedback 정답 텍스트와 음성 녹음을 멀티파트로 보내 채점을 요청한다
func (s *AIService) GenerateFeedback(ctx context.Context, problemID, answer, voiceFilename string, voice io.Reader) (*GenerateFeedbackResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("problemId", problemID); err != nil {
		return nil, err
	}

	// 정답은 JSON 직렬화된 문자열로 보낸다
	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteField("answer", string(answerJSON)); err != nil {
		return nil, err
	}

	part, err := writer.CreateFormFile("voice", voiceFilename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, voice); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL()+"/chat/generate_feedback", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.ObserveAIRequest("generate_feedback", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", util.ErrAIServer, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveAIRequest("generate_feedback", resp.StatusCode, time.Since(start))

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d): %s", util.ErrAIServer, resp.StatusCode, string(body))
	}

	var result GenerateFeedbackResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
