package model

// 员工角色
const (
	RoleStaff   = "staff"   // 正式技师，参与值班轮转
	RoleStudent = "student" // 学员，仅白班
)

// Employee 技师/学员档案表 — 对应 employees
type Employee struct {
	EmployeeID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Age            int     `gorm:"type:smallint"                                  json:"age"`
	Role           string  `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"` // staff | student
	MaxHoursPerDay float64 `gorm:"type:numeric(4,1);not null;default:8.0"         json:"max_hours_per_day"`
	SoftDeleteModel

	// 关联
	Availability []EmployeeAvailability `gorm:"foreignKey:EmployeeID" json:"availability,omitempty"`
	TimeOffs     []TimeOff              `gorm:"foreignKey:EmployeeID" json:"time_offs,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// AvailableOn 员工在该星期几是否可排班
func (e *Employee) AvailableOn(day Weekday) bool {
	for _, a := range e.Availability {
		if a.Day == day {
			return true
		}
	}
	return false
}

// AvailabilityDays 返回可排班星期集合（去重交给数据库联合主键保证）
func (e *Employee) AvailabilityDays() []Weekday {
	days := make([]Weekday, 0, len(e.Availability))
	for _, a := range e.Availability {
		days = append(days, a.Day)
	}
	return days
}

// EmployeeAvailability 员工每周可排班日 — 对应 employee_availabilities
// 联合主键 (employee_id, day) 保证同一星期几不重复
type EmployeeAvailability struct {
	EmployeeID string  `gorm:"type:uuid;primaryKey"     json:"employee_id"`
	Day        Weekday `gorm:"type:smallint;primaryKey" json:"day"`
}

// TableName 指定表名
func (EmployeeAvailability) TableName() string { return "employee_availabilities" }

// [自证通过] internal/model/employee.go
