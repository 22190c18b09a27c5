package scheduler

import (
	"time"

	"go.uber.org/zap"

	"echo-roster/internal/model"
)

// DefaultRules 返回内置固定规则。
// 规则以数据形式表达（员工姓名 + 地点名称 + 工作日集合），
// 随迁移播种入库，可单独启停；此处的副本供测试使用。
func DefaultRules() []model.ScheduleRule {
	return []model.ScheduleRule{
		{
			RuleCode:     model.RuleCodeFixedWeekday,
			RuleName:     "THC 固定覆盖",
			EmployeeName: "Emilio",
			LocationName: "THC",
			Weekdays:     model.IntArray{int(model.Monday), int(model.Tuesday), int(model.Wednesday), int(model.Thursday)},
			IsEnabled:    true,
			IsBuiltin:    true,
		},
		{
			RuleCode:     model.RuleCodeFixedWeekday,
			RuleName:     "Tx-IP 固定覆盖",
			EmployeeName: "Martha",
			LocationName: "Tx-IP",
			Weekdays:     model.IntArray{int(model.Tuesday), int(model.Friday)},
			IsEnabled:    true,
			IsBuiltin:    true,
		},
	}
}

// applyRules 执行固定规则指派。
// 对每条启用规则：按姓名/地点名忽略大小写锚定对象，任一缺失则规则
// 静默跳过（记日志，不报错，产出零班次）；锚定成功后在目标周的
// 周一至周五窗口内，对规则覆盖且员工当天可用、无已批准休假的每一天
// 生成一条 08:00-17:00 班次。周末永不考虑。
func (e *Engine) applyRules(weekStart time.Time, employees []model.Employee, locations []model.Location) []model.Shift {
	var shifts []model.Shift
	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.IsEnabled {
			continue
		}

		emp := findEmployee(employees, rule.EmployeeName)
		if emp == nil {
			e.logger.Info("规则锚定员工缺失，跳过",
				zap.String("rule_name", rule.RuleName),
				zap.String("employee_name", rule.EmployeeName))
			continue
		}
		loc := findLocation(locations, rule.LocationName)
		if loc == nil {
			e.logger.Info("规则锚定地点缺失，跳过",
				zap.String("rule_name", rule.RuleName),
				zap.String("location_name", rule.LocationName))
			continue
		}

		applied := 0
		for offset := 0; offset < 7; offset++ {
			date := weekStart.AddDate(0, 0, offset)
			day := model.WeekdayOf(date)
			if day.IsWeekend() || !rule.AppliesOn(day) {
				continue
			}
			if !emp.AvailableOn(day) || HasApprovedTimeOff(emp, date) {
				continue
			}
			shifts = append(shifts, newShift(emp.EmployeeID, loc.LocationID, date, DayShiftStart, DayShiftEnd))
			applied++
		}

		e.logger.Info("固定规则已执行",
			zap.String("rule_name", rule.RuleName),
			zap.String("employee", emp.Name),
			zap.String("location", loc.Name),
			zap.Int("shift_count", applied))
	}
	return shifts
}
