package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	Name           string  `json:"name"              binding:"required,min=2,max=100"`
	Age            int     `json:"age"               binding:"omitempty,min=16,max=100"`
	Role           string  `json:"role"              binding:"omitempty,oneof=staff student"`
	MaxHoursPerDay float64 `json:"max_hours_per_day" binding:"omitempty,gt=0"`
	Availability   []int   `json:"availability"      binding:"omitempty,dive,min=0,max=6"` // 周一=0 … 周日=6
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	Name           *string  `json:"name"              binding:"omitempty,min=2,max=100"`
	Age            *int     `json:"age"               binding:"omitempty,min=16,max=100"`
	Role           *string  `json:"role"              binding:"omitempty,oneof=staff student"`
	MaxHoursPerDay *float64 `json:"max_hours_per_day" binding:"omitempty,gt=0"`
	Availability   *[]int   `json:"availability"      binding:"omitempty,dive,min=0,max=6"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Age            int     `json:"age,omitempty"`
	Role           string  `json:"role"`
	MaxHoursPerDay float64 `json:"max_hours_per_day"`
	Availability   []int   `json:"availability"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
