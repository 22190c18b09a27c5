package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"echo-roster/internal/dto"
	"echo-roster/internal/service"
	"echo-roster/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportScheduleExcel 导出一周已发布排班为 Excel
// GET /api/v1/export/schedule.xlsx?week_start=2024-01-01
func (h *ExportHandler) ExportScheduleExcel(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportScheduleExcel(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeader(c, filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ExportScheduleICS 导出一周已发布排班为 iCalendar
// GET /api/v1/export/schedule.ics?week_start=2024-01-01
func (h *ExportHandler) ExportScheduleICS(c *gin.Context) {
	var req dto.ScheduleWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportScheduleICS(c.Request.Context(), req.WeekStart)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	setDownloadHeader(c, filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// setDownloadHeader 设置附件下载响应头（文件名含中文需 RFC 5987 编码）
func setDownloadHeader(c *gin.Context, filename string) {
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeekStart):
		response.BadRequest(c, 18001, "week_start 日期格式错误")
	case errors.Is(err, service.ErrExportNoShifts):
		response.NotFound(c, 20001, "该周没有已发布班次")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
