package scheduler

import (
	"time"

	"echo-roster/internal/model"
)

// fillGaps 缺口填充。
// 超声检查室地点 = 名称不在保留集合内的全部地点。对目标周周一至
// 周五的每个（地点, 日期）槽位，从当天可用、无已批准休假且当天尚未
// 被指派的员工中等概率随机选一人，排 08:00-17:00 白班；同一员工同一天
// 不会被排到多个超声地点。尽力而为，不保证满足地点人手需求。
func (e *Engine) fillGaps(
	weekStart time.Time,
	employees []model.Employee,
	locations []model.Location,
	existing []model.Shift,
) []model.Shift {
	type slot struct {
		employeeID string
		date       time.Time
	}
	taken := make(map[slot]bool, len(existing))
	for i := range existing {
		taken[slot{existing[i].EmployeeID, dateOnly(existing[i].Date)}] = true
	}

	var echoLocs []model.Location
	for _, loc := range locations {
		if !containsFold(reservedLocationNames, loc.Name) {
			echoLocs = append(echoLocs, loc)
		}
	}

	var shifts []model.Shift
	for offset := 0; offset < 7; offset++ {
		date := dateOnly(weekStart.AddDate(0, 0, offset))
		day := model.WeekdayOf(date)
		if day.IsWeekend() {
			continue
		}
		for _, loc := range echoLocs {
			var candidates []*model.Employee
			for i := range employees {
				emp := &employees[i]
				if !emp.AvailableOn(day) || taken[slot{emp.EmployeeID, date}] || HasApprovedTimeOff(emp, date) {
					continue
				}
				candidates = append(candidates, emp)
			}
			if len(candidates) == 0 {
				continue
			}
			emp := candidates[e.rng.Intn(len(candidates))]
			shifts = append(shifts, newShift(emp.EmployeeID, loc.LocationID, date, DayShiftStart, DayShiftEnd))
			taken[slot{emp.EmployeeID, date}] = true
		}
	}
	return shifts
}
