// Package scheduler 实现排班核心引擎：
// 超声检查室（echolab）与值班（oncall）两条生成路径，
// 以及控制两者依赖关系的发布门控谓词。
// 引擎是纯计算：输入内存中的员工/地点/已发布班次，输出新班次列表，
// 不触碰存储，也从不修改已有班次。
package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echo-roster/internal/model"
)

// 排班类型
const (
	TypeEchoLab = "echolab" // 超声检查室排班（依赖已发布值班）
	TypeOnCall  = "oncall"  // 值班排班（独立生成）
)

// 班次时间窗。值班班次跨午夜，date 取起始日。
const (
	DayShiftStart    = "08:00"
	DayShiftEnd      = "17:00"
	OnCallShiftStart = "17:00"
	OnCallShiftEnd   = "08:00"
)

// 值班地点名称。"On Call Fetal" 可选，地点表中存在即参与轮转。
var onCallLocationNames = []string{"JDCH", "W/M", "On Call Fetal"}

// 门控统计覆盖天数时只看这两个值班地点
var gateLocationNames = []string{"JDCH", "W/M"}

// 保留地点名称：规则/值班专用，缺口填充不会向这些地点排人
var reservedLocationNames = []string{"JDCH", "W/M", "THC", "Tx-IP", "OR/Inpat", "MHW", "MHM"}

// 错误定义
var (
	ErrUnknownScheduleType = errors.New("未知的排班类型")
	ErrOnCallNotPublished  = errors.New("值班排班尚未完整发布，无法生成超声检查室排班")
)

// Engine 排班引擎。规则表与随机源由调用方注入：
// 规则是数据而非代码，随机源按请求传入以保证同种子结果可复现。
type Engine struct {
	rules        []model.ScheduleRule
	horizonWeeks int
	rng          *rand.Rand
	logger       *zap.Logger
}

// NewEngine 创建排班引擎
// horizonWeeks 控制值班生成的周数，小于 1 时按 1 处理。
func NewEngine(rules []model.ScheduleRule, horizonWeeks int, rng *rand.Rand, logger *zap.Logger) *Engine {
	if horizonWeeks < 1 {
		horizonWeeks = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		rules:        rules,
		horizonWeeks: horizonWeeks,
		rng:          rng,
		logger:       logger,
	}
}

// Generate 生成一周排班，是引擎唯一入口。
// scheduleType 取 "echolab" 或 "oncall"，其余值返回 ErrUnknownScheduleType。
// 子组件的失败一律包装上抛，引擎内部不做重试。
func (e *Engine) Generate(
	weekStart time.Time,
	employees []model.Employee,
	locations []model.Location,
	scheduleType string,
	publishedOnCall []model.Shift,
) ([]model.Shift, error) {
	shifts, err := e.dispatch(weekStart, employees, locations, scheduleType, publishedOnCall)
	if err != nil {
		e.logger.Warn("排班生成失败",
			zap.String("schedule_type", scheduleType),
			zap.Time("week_start", weekStart),
			zap.Error(err))
		return nil, fmt.Errorf("生成排班失败: %w", err)
	}
	e.logger.Info("排班生成完成",
		zap.String("schedule_type", scheduleType),
		zap.Time("week_start", weekStart),
		zap.Int("shift_count", len(shifts)))
	return shifts, nil
}

func (e *Engine) dispatch(
	weekStart time.Time,
	employees []model.Employee,
	locations []model.Location,
	scheduleType string,
	publishedOnCall []model.Shift,
) ([]model.Shift, error) {
	switch scheduleType {
	case TypeEchoLab:
		return e.generateEchoLab(weekStart, employees, locations, publishedOnCall), nil
	case TypeOnCall:
		return e.generateOnCall(weekStart, employees, locations), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheduleType, scheduleType)
	}
}

// generateEchoLab 组装超声检查室一周排班：
// 依次执行固定规则、值班派生、缺口填充。
// 发布门控（CanGenerateEchoLab）由编排方在调用前校验，
// 引擎本身对传入的已发布值班班次只做派生，不做准入判断。
func (e *Engine) generateEchoLab(
	weekStart time.Time,
	employees []model.Employee,
	locations []model.Location,
	publishedOnCall []model.Shift,
) []model.Shift {
	var shifts []model.Shift
	shifts = append(shifts, e.applyRules(weekStart, employees, locations)...)
	shifts = append(shifts, e.resolveOnCallPairs(publishedOnCall, employees, locations)...)
	shifts = append(shifts, e.fillGaps(weekStart, employees, locations, shifts)...)
	return shifts
}

// newShift 生成一条未发布班次。published 仅由显式发布操作置位。
func newShift(employeeID, locationID string, date time.Time, start, end string) model.Shift {
	return model.Shift{
		ShiftID:    uuid.NewString(),
		EmployeeID: employeeID,
		LocationID: locationID,
		Date:       dateOnly(date),
		StartTime:  start,
		EndTime:    end,
		Published:  false,
	}
}

// dateOnly 去掉时间部分，只保留日历日
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// findEmployee 按姓名查找员工，忽略大小写，重名取输入顺序首个
func findEmployee(employees []model.Employee, name string) *model.Employee {
	for i := range employees {
		if strings.EqualFold(employees[i].Name, name) {
			return &employees[i]
		}
	}
	return nil
}

// findLocation 按名称查找地点，忽略大小写
func findLocation(locations []model.Location, name string) *model.Location {
	for i := range locations {
		if strings.EqualFold(locations[i].Name, name) {
			return &locations[i]
		}
	}
	return nil
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// shiftLocationName 解析班次的地点名称。
// 优先使用已加载的关联对象，否则退回 id→地点 映射，两条路径结果一致。
func shiftLocationName(s *model.Shift, byID map[string]*model.Location) string {
	if s.Location != nil {
		return s.Location.Name
	}
	if loc, ok := byID[s.LocationID]; ok {
		return loc.Name
	}
	return ""
}

// locationIndex 建立 id→地点 映射
func locationIndex(locations []model.Location) map[string]*model.Location {
	byID := make(map[string]*model.Location, len(locations))
	for i := range locations {
		byID[locations[i].LocationID] = &locations[i]
	}
	return byID
}
