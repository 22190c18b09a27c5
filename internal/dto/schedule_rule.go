package dto

// ── 排班规则模块 DTO ──

// CreateScheduleRuleRequest 创建排班规则请求
type CreateScheduleRuleRequest struct {
	RuleName     string `json:"rule_name"     binding:"required,min=2,max=100"`
	EmployeeName string `json:"employee_name" binding:"required,min=1,max=100"`
	LocationName string `json:"location_name" binding:"required,min=1,max=100"`
	Weekdays     []int  `json:"weekdays"      binding:"required,min=1,dive,min=0,max=6"`
}

// UpdateScheduleRuleRequest 更新排班规则请求
type UpdateScheduleRuleRequest struct {
	RuleName     *string `json:"rule_name"     binding:"omitempty,min=2,max=100"`
	EmployeeName *string `json:"employee_name" binding:"omitempty,min=1,max=100"`
	LocationName *string `json:"location_name" binding:"omitempty,min=1,max=100"`
	Weekdays     *[]int  `json:"weekdays"      binding:"omitempty,min=1,dive,min=0,max=6"`
	IsEnabled    *bool   `json:"is_enabled"`
}

// ScheduleRuleResponse 排班规则响应
type ScheduleRuleResponse struct {
	ID           string `json:"id"`
	RuleCode     string `json:"rule_code"`
	RuleName     string `json:"rule_name"`
	EmployeeName string `json:"employee_name"`
	LocationName string `json:"location_name"`
	Weekdays     []int  `json:"weekdays"`
	IsEnabled    bool   `json:"is_enabled"`
	IsBuiltin    bool   `json:"is_builtin"`
	UpdatedAt    string `json:"updated_at"`
}
