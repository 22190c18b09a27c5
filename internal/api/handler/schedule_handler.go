package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"echo-roster/internal/dto"
	"echo-roster/internal/service"
	"echo-roster/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// PreviewSchedule 预览排班（只生成不落库）
// POST /api/v1/schedules/preview
func (h *ScheduleHandler) PreviewSchedule(c *gin.Context) {
	var req dto.PreviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// GenerateSchedule 生成排班草稿（覆盖该周旧草稿）
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// PublishSchedule 发布一周排班
// POST /api/v1/schedules/publish
func (h *ScheduleHandler) PublishSchedule(c *gin.Context) {
	var req dto.PublishScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Publish(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListWeek 查询一周班次（含草稿，供排班员核对）
// GET /api/v1/schedules/week?week_start=2024-01-01
func (h *ScheduleHandler) ListWeek(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	shifts, err := h.scheduleSvc.ListWeek(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": shifts})
}

// ListPublishedWeek 查询一周已发布班次（对全员可见）
// GET /api/v1/schedules/published?week_start=2024-01-01
func (h *ScheduleHandler) ListPublishedWeek(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	shifts, err := h.scheduleSvc.ListPublishedWeek(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": shifts})
}

// GetOnCallPublishedGate 查询值班发布门控
// GET /api/v1/schedules/gates/oncall-published?week_start=2024-01-01
func (h *ScheduleHandler) GetOnCallPublishedGate(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gate, err := h.scheduleSvc.OnCallPublished(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gate)
}

// GetEchoLabGate 查询超声检查室生成门控
// GET /api/v1/schedules/gates/echolab?week_start=2024-01-01
func (h *ScheduleHandler) GetEchoLabGate(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gate, err := h.scheduleSvc.CanGenerateEchoLab(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gate)
}

// handleScheduleError 统一处理排班模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeekStart):
		response.BadRequest(c, 18001, "week_start 日期格式错误")
	case errors.Is(err, service.ErrUnknownScheduleType):
		response.BadRequest(c, 18002, "未知的排班类型")
	case errors.Is(err, service.ErrOnCallNotPublished):
		response.Error(c, http.StatusConflict, 18003, "值班排班尚未完整发布，无法生成超声检查室排班")
	case errors.Is(err, service.ErrNothingToPublish):
		response.Error(c, http.StatusConflict, 18004, "目标周没有可发布的草稿班次")
	default:
		response.InternalError(c)
	}
}
