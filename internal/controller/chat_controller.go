package controller

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/elect10/sesac-hackathon/internal/service"
	"github.com/elect10/sesac-hackathon/internal/util"
	"github.com/elect10/sesac-hackathon/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// @Summary 문제 생성
// @Description 사용자 프로필 기반으로 AI 서버에 개인화된 문제 생성을 요청
// @Tags 챗
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProblemResult}
// @Failure 404 {object} util.Response "사용자 없음"
// @Failure 502 {object} util.Response "AI 서버 오류"
// @Router /api/chat/problem [post]
func (c *ChatController) GenerateProblem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ChatService.GenerateProblem(ctx.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAIServer):
			logger.Log.Error("AI 서버 호출 실패", zap.Error(err))
			util.BadGateway(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary 최근 생성 문제 조회
// @Tags 챗
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProblemResult}
// @Failure 404 {object} util.Response "생성된 문제 없음"
// @Router /api/chat/problem/latest [get]
func (c *ChatController) LatestProblem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ChatService.LatestProblem(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 답변 채점
// @Description 음성 녹음을 AI 서버로 보내 채점하고 풀이 이력을 기록
// @Tags 챗
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param problemId formData string true "문제 ID"
// @Param voice formData file true "답변 음성 녹음"
// @Success 200 {object} util.Response{data=service.FeedbackResult}
// @Failure 404 {object} util.Response "문제 없음"
// @Failure 502 {object} util.Response "AI 서버 오류"
// @Router /api/chat/feedback [post]
func (c *ChatController) GenerateFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	problemID := ctx.PostForm("problemId")
	if problemID == "" {
		util.BadRequest(ctx, "problemId is required")
		return
	}

	file, err := ctx.FormFile("voice")
	if err != nil {
		util.BadRequest(ctx, "Voice file is required")
		return
	}

	if !util.IsAllowedVoiceFile(file.Filename) {
		util.BadRequest(ctx, "Unsupported voice file type")
		return
	}

	// ffmpeg probe는 경로가 필요해서 임시 파일로 받는다
	tmpPath := filepath.Join(os.TempDir(), "voice_"+util.GenerateTempName(filepath.Ext(file.Filename)))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	info, err := util.GetAudioInfo(tmpPath)
	if err != nil {
		util.BadRequest(ctx, util.ErrInvalidVoice.Error())
		return
	}
	if info.Duration > util.MaxVoiceDurationSeconds {
		util.BadRequest(ctx, "Voice recording is too long")
		return
	}

	voice, err := os.Open(tmpPath)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer voice.Close()

	result, err := c.ChatService.GenerateFeedback(ctx.Request.Context(), claims.UserID, problemID, file.Filename, voice)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidVoice):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAIServer):
			logger.Log.Error("AI 서버 호출 실패", zap.Error(err))
			util.BadGateway(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
