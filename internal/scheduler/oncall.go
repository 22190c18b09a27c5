package scheduler

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"echo-roster/internal/model"
)

// 值班地点 → 配对白班地点。
// JDCH 值班者次日白班在 OR/Inpat；MHW/MHM 值班者白班留在原地点。
// 未列出的值班地点（如 W/M）不派生白班。
var onCallPairTargets = map[string]string{
	"JDCH": "OR/Inpat",
	"MHW":  "MHW",
	"MHM":  "MHM",
}

// resolveOnCallPairs 从已发布值班班次派生白班。
// 跳过周末日期；地点名称既支持已加载的关联对象，也支持仅有
// location_id 时经映射解析。配对目标地点不存在时跳过并记日志。
func (e *Engine) resolveOnCallPairs(
	publishedOnCall []model.Shift,
	employees []model.Employee,
	locations []model.Location,
) []model.Shift {
	byID := locationIndex(locations)

	var shifts []model.Shift
	for i := range publishedOnCall {
		oc := &publishedOnCall[i]
		if model.WeekdayOf(oc.Date).IsWeekend() {
			continue
		}

		name := shiftLocationName(oc, byID)
		targetName, ok := pairTarget(name)
		if !ok {
			continue
		}
		target := findLocation(locations, targetName)
		if target == nil {
			e.logger.Info("配对白班地点缺失，跳过",
				zap.String("oncall_location", name),
				zap.String("target_location", targetName))
			continue
		}
		shifts = append(shifts, newShift(oc.EmployeeID, target.LocationID, oc.Date, DayShiftStart, DayShiftEnd))
	}
	return shifts
}

func pairTarget(locationName string) (string, bool) {
	for name, target := range onCallPairTargets {
		if strings.EqualFold(name, locationName) {
			return target, true
		}
	}
	return "", false
}

// generateOnCall 生成值班轮转。
// 覆盖每周全部 7 天与全部在册值班地点，按天序轮转正式员工
// （(绝对天序 + 地点序) % 员工数），不看单日可用性 —— 轮转策略
// 确定可测；周级已批准休假仍经 FilterAvailable 剔除。
// 值班时间窗 17:00-08:00 跨午夜，date 取起始日。
func (e *Engine) generateOnCall(weekStart time.Time, employees []model.Employee, locations []model.Location) []model.Shift {
	days := e.horizonWeeks * 7
	periodEnd := weekStart.AddDate(0, 0, days-1)

	staff := make([]model.Employee, 0, len(employees))
	for _, emp := range FilterAvailable(employees, weekStart, periodEnd) {
		if emp.Role == model.RoleStaff {
			staff = append(staff, emp)
		}
	}
	if len(staff) == 0 {
		e.logger.Warn("无可用正式员工，值班排班为空", zap.Time("week_start", weekStart))
		return nil
	}

	var oncallLocs []model.Location
	for _, name := range onCallLocationNames {
		if loc := findLocation(locations, name); loc != nil {
			oncallLocs = append(oncallLocs, *loc)
		}
	}

	var shifts []model.Shift
	for dayIdx := 0; dayIdx < days; dayIdx++ {
		date := weekStart.AddDate(0, 0, dayIdx)
		for locIdx, loc := range oncallLocs {
			emp := staff[(dayIdx+locIdx)%len(staff)]
			shifts = append(shifts, newShift(emp.EmployeeID, loc.LocationID, date, OnCallShiftStart, OnCallShiftEnd))
		}
	}
	return shifts
}
