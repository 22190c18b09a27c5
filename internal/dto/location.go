package dto

// ── 地点模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	Name                   string `json:"name"                     binding:"required,min=1,max=100"`
	Address                string `json:"address"                  binding:"omitempty,max=200"`
	Notes                  string `json:"notes"                    binding:"omitempty,max=500"`
	RequiredStaffMorning   int    `json:"required_staff_morning"   binding:"omitempty,min=0"`
	RequiredStaffAfternoon int    `json:"required_staff_afternoon" binding:"omitempty,min=0"`
	RequiredStaffNight     int    `json:"required_staff_night"     binding:"omitempty,min=0"`
}

// UpdateLocationRequest 更新地点请求
type UpdateLocationRequest struct {
	Name                   *string `json:"name"                     binding:"omitempty,min=1,max=100"`
	Address                *string `json:"address"                  binding:"omitempty,max=200"`
	Notes                  *string `json:"notes"                    binding:"omitempty,max=500"`
	RequiredStaffMorning   *int    `json:"required_staff_morning"   binding:"omitempty,min=0"`
	RequiredStaffAfternoon *int    `json:"required_staff_afternoon" binding:"omitempty,min=0"`
	RequiredStaffNight     *int    `json:"required_staff_night"     binding:"omitempty,min=0"`
	IsActive               *bool   `json:"is_active"`
}

// LocationListRequest 地点列表查询参数
type LocationListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Address                string `json:"address,omitempty"`
	Notes                  string `json:"notes,omitempty"`
	RequiredStaffMorning   int    `json:"required_staff_morning"`
	RequiredStaffAfternoon int    `json:"required_staff_afternoon"`
	RequiredStaffNight     int    `json:"required_staff_night"`
	IsActive               bool   `json:"is_active"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}
