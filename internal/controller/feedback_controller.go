package controller

import (
	"github.com/elect10/sesac-hackathon/internal/service"
	"github.com/elect10/sesac-hackathon/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	ParentFeedbackService *service.ParentFeedbackService
}

func NewFeedbackController(parentFeedbackService *service.ParentFeedbackService) *FeedbackController {
	return &FeedbackController{ParentFeedbackService: parentFeedbackService}
}

// @Summary 보호자 피드백 등록
// @Tags 피드백
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param feedback body service.ParentFeedbackRequest true "피드백 내용"
// @Success 201 {object} util.Response{data=model.ParentFeedback}
// @Router /api/feedback [post]
func (c *FeedbackController) CreateFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ParentFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.ParentFeedbackService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, feedback)
}

// @Summary 보호자 피드백 목록
// @Description 최신 피드백부터 전체 조회
// @Tags 피드백
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ParentFeedback}
// @Router /api/feedback [get]
func (c *FeedbackController) ListFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	feedbacks, err := c.ParentFeedbackService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, feedbacks)
}
