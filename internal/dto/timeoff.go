package dto

// ── 休假模块 DTO ──

// CreateTimeOffRequest 提交休假申请
type CreateTimeOffRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"    binding:"required,datetime=2006-01-02"`
}

// ReviewTimeOffRequest 审批休假申请
type ReviewTimeOffRequest struct {
	Status string `json:"status" binding:"required,oneof=approved denied"`
}

// TimeOffListRequest 休假列表查询参数
type TimeOffListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved denied"`
}

// TimeOffResponse 休假申请响应
type TimeOffResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	RequestedAt  string `json:"requested_at"`
}
