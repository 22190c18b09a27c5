package dto

// ── 排班模块 DTO ──

// GenerateScheduleRequest 生成排班请求。
// seed 可选，用于复现同一随机序列；不传则使用时间种子。
type GenerateScheduleRequest struct {
	WeekStart    string `json:"week_start"    binding:"required,datetime=2006-01-02"`
	ScheduleType string `json:"schedule_type" binding:"required"`
	Seed         *int64 `json:"seed"          binding:"omitempty"`
}

// PreviewScheduleRequest 预览排班请求（只生成不落库）
type PreviewScheduleRequest = GenerateScheduleRequest

// PublishScheduleRequest 发布排班请求
type PublishScheduleRequest struct {
	WeekStart string `json:"week_start" binding:"required,datetime=2006-01-02"`
}

// ScheduleWeekRequest 按周查询参数
type ScheduleWeekRequest struct {
	WeekStart string `form:"week_start" binding:"required,datetime=2006-01-02"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name,omitempty"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Published    bool   `json:"published"`
}

// GenerateScheduleResponse 生成排班响应
type GenerateScheduleResponse struct {
	WeekStart    string          `json:"week_start"`
	ScheduleType string          `json:"schedule_type"`
	ShiftCount   int             `json:"shift_count"`
	Shifts       []ShiftResponse `json:"shifts"`
}

// PublishScheduleResponse 发布排班响应
type PublishScheduleResponse struct {
	WeekStart      string `json:"week_start"`
	PublishedCount int64  `json:"published_count"`
}

// GateResponse 门控谓词响应
type GateResponse struct {
	WeekStart string `json:"week_start"`
	Allowed   bool   `json:"allowed"`
}
