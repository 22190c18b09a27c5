package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"echo-roster/internal/dto"
	"echo-roster/internal/service"
	"echo-roster/pkg/response"
)

// ScheduleRuleHandler 排班规则模块 HTTP 处理器
type ScheduleRuleHandler struct {
	ruleSvc service.ScheduleRuleService
}

// NewScheduleRuleHandler 创建 ScheduleRuleHandler
func NewScheduleRuleHandler(ruleSvc service.ScheduleRuleService) *ScheduleRuleHandler {
	return &ScheduleRuleHandler{ruleSvc: ruleSvc}
}

// ListScheduleRules 获取排班规则列表
// GET /api/v1/schedule-rules
func (h *ScheduleRuleHandler) ListScheduleRules(c *gin.Context) {
	rules, err := h.ruleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rules})
}

// GetScheduleRule 获取排班规则详情
// GET /api/v1/schedule-rules/:id
func (h *ScheduleRuleHandler) GetScheduleRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	rule, err := h.ruleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// CreateScheduleRule 创建排班规则
// POST /api/v1/schedule-rules
func (h *ScheduleRuleHandler) CreateScheduleRule(c *gin.Context) {
	var req dto.CreateScheduleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rule, err := h.ruleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleRuleError(c, err)
		return
	}

	response.Created(c, rule)
}

// UpdateScheduleRule 更新排班规则（含启用/停用）
// PUT /api/v1/schedule-rules/:id
func (h *ScheduleRuleHandler) UpdateScheduleRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	var req dto.UpdateScheduleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rule, err := h.ruleSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// DeleteScheduleRule 删除排班规则（内置规则不可删除）
// DELETE /api/v1/schedule-rules/:id
func (h *ScheduleRuleHandler) DeleteScheduleRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	if err := h.ruleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScheduleRuleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleScheduleRuleError 统一处理排班规则模块业务错误
func (h *ScheduleRuleHandler) handleScheduleRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleRuleNotFound):
		response.NotFound(c, 19001, "排班规则不存在")
	case errors.Is(err, service.ErrBuiltinRuleDelete):
		response.BadRequest(c, 19002, "内置规则不可删除，只能停用")
	case errors.Is(err, service.ErrInvalidAvailability):
		response.BadRequest(c, 19003, "星期集合必须在 0-6 之间")
	case errors.Is(err, service.ErrDuplicateWeekday):
		response.BadRequest(c, 19004, "星期集合存在重复")
	default:
		response.InternalError(c)
	}
}
