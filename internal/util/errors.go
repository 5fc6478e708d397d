package util

import "errors"

var (
	ErrUserNotFound    = errors.New("사용자를 찾을 수 없습니다")
	ErrEmailRegistered = errors.New("이미 등록된 이메일입니다")
	ErrProblemNotFound = errors.New("problem not found")
	ErrAIServer        = errors.New("AI 서버 호출 실패")
	ErrInvalidVoice    = errors.New("voice file is empty or not a valid audio")
)
