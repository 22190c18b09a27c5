package scheduler

import (
	"time"

	"echo-roster/internal/model"
)

// OnCallPublished 判断目标周值班是否已完整发布：
// 只统计地点为 JDCH 或 W/M、日期落在 [weekStart, weekStart+6天] 内的
// 班次，要求覆盖的不同日期恰为该周全部 7 天。部分覆盖视为未发布。
// （曾有"本周存在任一值班班次即算发布"的宽松变体，判定过松已弃用。）
func OnCallPublished(weekStart time.Time, published []model.Shift, locations []model.Location) bool {
	weekStart = dateOnly(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)
	byID := locationIndex(locations)

	covered := make(map[time.Time]bool, 7)
	for i := range published {
		s := &published[i]
		if !containsFold(gateLocationNames, shiftLocationName(s, byID)) {
			continue
		}
		date := dateOnly(s.Date)
		if date.Before(weekStart) || date.After(weekEnd) {
			continue
		}
		covered[date] = true
	}
	return len(covered) == 7
}

// CanGenerateEchoLab 判断是否允许生成超声检查室排班。
// 与 OnCallPublished 同口径：目标周值班必须全周覆盖，缺任何一天即拒绝。
func CanGenerateEchoLab(weekStart time.Time, published []model.Shift, locations []model.Location) bool {
	return OnCallPublished(weekStart, published, locations)
}
