package scheduler

import (
	"time"

	"echo-roster/internal/model"
)

// FilterAvailable 过滤掉在 [periodStart, periodEnd]（含端点）内
// 存在已批准休假的员工。区间相交判定见 model.TimeOff.Overlaps。
// 纯过滤，不修改输入。值班生成路径按周调用此函数；
// 超声检查室路径改为逐人逐日查 HasApprovedTimeOff。
func FilterAvailable(employees []model.Employee, periodStart, periodEnd time.Time) []model.Employee {
	periodStart = dateOnly(periodStart)
	periodEnd = dateOnly(periodEnd)

	available := make([]model.Employee, 0, len(employees))
	for _, emp := range employees {
		if !hasApprovedOverlap(&emp, periodStart, periodEnd) {
			available = append(available, emp)
		}
	}
	return available
}

// HasApprovedTimeOff 判断员工在指定日期是否处于已批准休假中
func HasApprovedTimeOff(emp *model.Employee, date time.Time) bool {
	return hasApprovedOverlap(emp, dateOnly(date), dateOnly(date))
}

func hasApprovedOverlap(emp *model.Employee, start, end time.Time) bool {
	for i := range emp.TimeOffs {
		to := &emp.TimeOffs[i]
		if to.Status == model.TimeOffStatusApproved && to.Overlaps(start, end) {
			return true
		}
	}
	return false
}
