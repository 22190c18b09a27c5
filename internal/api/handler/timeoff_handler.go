package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"echo-roster/internal/dto"
	"echo-roster/internal/service"
	"echo-roster/pkg/response"
)

// TimeOffHandler 休假模块 HTTP 处理器
type TimeOffHandler struct {
	timeOffSvc service.TimeOffService
}

// NewTimeOffHandler 创建 TimeOffHandler
func NewTimeOffHandler(timeOffSvc service.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffSvc: timeOffSvc}
}

// CreateTimeOff 提交休假申请
// POST /api/v1/time-offs
func (h *TimeOffHandler) CreateTimeOff(c *gin.Context) {
	var req dto.CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	timeOff, err := h.timeOffSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.Created(c, timeOff)
}

// ListTimeOffs 按状态分页查询休假申请（默认待审批）
// GET /api/v1/time-offs
func (h *TimeOffHandler) ListTimeOffs(c *gin.Context) {
	var req dto.TimeOffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	timeOffs, total, err := h.timeOffSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, timeOffs, total, req.GetPage(), req.GetPageSize())
}

// GetTimeOff 获取休假申请详情
// GET /api/v1/time-offs/:id
func (h *TimeOffHandler) GetTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "休假申请ID不能为空")
		return
	}

	timeOff, err := h.timeOffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, timeOff)
}

// ListEmployeeTimeOffs 查询指定员工的休假申请
// GET /api/v1/employees/:id/time-offs
func (h *TimeOffHandler) ListEmployeeTimeOffs(c *gin.Context) {
	employeeID := c.Param("id")
	if employeeID == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	timeOffs, err := h.timeOffSvc.ListByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": timeOffs})
}

// ReviewTimeOff 审批休假申请
// POST /api/v1/time-offs/:id/review
func (h *TimeOffHandler) ReviewTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "休假申请ID不能为空")
		return
	}

	var req dto.ReviewTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	timeOff, err := h.timeOffSvc.Review(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, timeOff)
}

// DeleteTimeOff 删除休假申请
// DELETE /api/v1/time-offs/:id
func (h *TimeOffHandler) DeleteTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "休假申请ID不能为空")
		return
	}

	if err := h.timeOffSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTimeOffError 统一处理休假模块业务错误
func (h *TimeOffHandler) handleTimeOffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeOffNotFound):
		response.NotFound(c, 17001, "休假申请不存在")
	case errors.Is(err, service.ErrInvalidTimeOffRange):
		response.BadRequest(c, 17002, "休假开始日期不能晚于结束日期")
	case errors.Is(err, service.ErrInvalidTimeOffDate):
		response.BadRequest(c, 17003, "休假日期格式错误")
	case errors.Is(err, service.ErrTimeOffAlreadyReviewed):
		response.BadRequest(c, 17004, "休假申请已审批，不可重复操作")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 15001, "员工不存在")
	default:
		response.InternalError(c)
	}
}
