package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"echo-roster/config"
	"echo-roster/internal/dto"
	"echo-roster/internal/model"
	"echo-roster/internal/repository"
	"echo-roster/internal/scheduler"
)

// ── 排班模块业务错误 ──

var (
	ErrUnknownScheduleType = errors.New("未知的排班类型")
	ErrOnCallNotPublished  = errors.New("值班排班尚未完整发布，无法生成超声检查室排班")
	ErrInvalidWeekStart    = errors.New("week_start 日期格式错误")
	ErrNothingToPublish    = errors.New("目标周没有可发布的草稿班次")
)

// ScheduleService 排班业务接口。
// 生成（Preview/Generate）与发布（Publish）是独立动作：
// 生成只产出草稿，发布单独把一周草稿置为可见，超声检查室的生成
// 又被值班的发布状态门控。
type ScheduleService interface {
	// 预览排班：只生成不落库
	Preview(ctx context.Context, req *dto.PreviewScheduleRequest) (*dto.GenerateScheduleResponse, error)
	// 生成排班：清掉该周旧草稿后落库新草稿
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest, callerID string) (*dto.GenerateScheduleResponse, error)
	// 发布一周排班
	Publish(ctx context.Context, req *dto.PublishScheduleRequest, callerID string) (*dto.PublishScheduleResponse, error)
	// 查询一周班次（含草稿）
	ListWeek(ctx context.Context, weekStart string) ([]dto.ShiftResponse, error)
	// 查询一周已发布班次
	ListPublishedWeek(ctx context.Context, weekStart string) ([]dto.ShiftResponse, error)
	// 值班发布门控
	OnCallPublished(ctx context.Context, weekStart string) (*dto.GateResponse, error)
	// 超声检查室生成门控
	CanGenerateEchoLab(ctx context.Context, weekStart string) (*dto.GateResponse, error)
}

type scheduleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// 生成
// ═══════════════════════════════════════════════════════════

// generate 加载当周输入、构建引擎并执行生成。
// 随机源按请求创建：传了 seed 用 seed（结果可复现），否则用时间种子。
func (s *scheduleService) generate(ctx context.Context, req *dto.GenerateScheduleRequest) (time.Time, []model.Shift, error) {
	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		return time.Time{}, nil, ErrInvalidWeekStart
	}

	if req.ScheduleType != scheduler.TypeEchoLab && req.ScheduleType != scheduler.TypeOnCall {
		return time.Time{}, nil, ErrUnknownScheduleType
	}

	employees, err := s.repo.Employee.ListWithTimeOffs(ctx)
	if err != nil {
		s.logger.Error("加载员工失败", zap.Error(err))
		return time.Time{}, nil, err
	}
	locations, err := s.repo.Location.List(ctx, false)
	if err != nil {
		s.logger.Error("加载地点失败", zap.Error(err))
		return time.Time{}, nil, err
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	published, err := s.repo.Shift.ListPublished(ctx, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("加载已发布班次失败", zap.Error(err))
		return time.Time{}, nil, err
	}

	// 超声检查室生成前先过门控：值班未整周发布直接拒绝，不产出任何班次
	if req.ScheduleType == scheduler.TypeEchoLab &&
		!scheduler.CanGenerateEchoLab(weekStart, published, locations) {
		s.logger.Warn("超声检查室生成被门控拒绝",
			zap.String("week_start", req.WeekStart))
		return time.Time{}, nil, ErrOnCallNotPublished
	}

	rules, err := s.repo.ScheduleRule.List(ctx, true)
	if err != nil {
		s.logger.Error("加载排班规则失败", zap.Error(err))
		return time.Time{}, nil, err
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	engine := scheduler.NewEngine(rules, s.cfg.Scheduler.HorizonWeeks, rng, s.logger)
	shifts, err := engine.Generate(weekStart, employees, locations, req.ScheduleType, published)
	if err != nil {
		if errors.Is(err, scheduler.ErrUnknownScheduleType) {
			return time.Time{}, nil, ErrUnknownScheduleType
		}
		return time.Time{}, nil, err
	}
	return weekStart, shifts, nil
}

func (s *scheduleService) Preview(ctx context.Context, req *dto.PreviewScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	weekStart, shifts, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.toGenerateResponse(ctx, weekStart, req.ScheduleType, shifts), nil
}

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest, callerID string) (*dto.GenerateScheduleResponse, error) {
	weekStart, shifts, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	// 覆盖式重新生成：先清掉该周期旧草稿，再落库新草稿。
	// 已发布班次不受影响。
	horizonDays := 7
	if req.ScheduleType == scheduler.TypeOnCall {
		horizonDays = s.cfg.Scheduler.HorizonWeeks * 7
	}
	rangeEnd := weekStart.AddDate(0, 0, horizonDays-1)

	if err := s.repo.Shift.DeleteDraftRange(ctx, weekStart, rangeEnd); err != nil {
		s.logger.Error("清除旧草稿失败", zap.Error(err))
		return nil, err
	}

	for i := range shifts {
		shifts[i].CreatedBy = &callerID
		shifts[i].UpdatedBy = &callerID
	}
	if err := s.repo.Shift.BatchCreate(ctx, shifts); err != nil {
		s.logger.Error("保存排班草稿失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("排班草稿已保存",
		zap.String("schedule_type", req.ScheduleType),
		zap.String("week_start", req.WeekStart),
		zap.Int("shift_count", len(shifts)))

	return s.toGenerateResponse(ctx, weekStart, req.ScheduleType, shifts), nil
}

// ═══════════════════════════════════════════════════════════
// 发布
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) Publish(ctx context.Context, req *dto.PublishScheduleRequest, callerID string) (*dto.PublishScheduleResponse, error) {
	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		return nil, ErrInvalidWeekStart
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	count, err := s.repo.Shift.PublishRange(ctx, weekStart, weekEnd, callerID)
	if err != nil {
		s.logger.Error("发布排班失败", zap.Error(err))
		return nil, err
	}
	if count == 0 {
		return nil, ErrNothingToPublish
	}

	s.logger.Info("排班已发布",
		zap.String("week_start", req.WeekStart),
		zap.Int64("published_count", count))

	return &dto.PublishScheduleResponse{
		WeekStart:      req.WeekStart,
		PublishedCount: count,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// 查询与门控
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) ListWeek(ctx context.Context, weekStart string) ([]dto.ShiftResponse, error) {
	return s.listWeek(ctx, weekStart, false)
}

func (s *scheduleService) ListPublishedWeek(ctx context.Context, weekStart string) ([]dto.ShiftResponse, error) {
	return s.listWeek(ctx, weekStart, true)
}

func (s *scheduleService) listWeek(ctx context.Context, weekStart string, publishedOnly bool) ([]dto.ShiftResponse, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return nil, ErrInvalidWeekStart
	}
	shifts, err := s.repo.Shift.ListRange(ctx, start, start.AddDate(0, 0, 6), publishedOnly)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *scheduleService) OnCallPublished(ctx context.Context, weekStart string) (*dto.GateResponse, error) {
	return s.gate(ctx, weekStart, scheduler.OnCallPublished)
}

func (s *scheduleService) CanGenerateEchoLab(ctx context.Context, weekStart string) (*dto.GateResponse, error) {
	return s.gate(ctx, weekStart, scheduler.CanGenerateEchoLab)
}

func (s *scheduleService) gate(
	ctx context.Context,
	weekStart string,
	predicate func(time.Time, []model.Shift, []model.Location) bool,
) (*dto.GateResponse, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return nil, ErrInvalidWeekStart
	}
	published, err := s.repo.Shift.ListPublished(ctx, start, start.AddDate(0, 0, 6))
	if err != nil {
		s.logger.Error("查询已发布班次失败", zap.Error(err))
		return nil, err
	}
	locations, err := s.repo.Location.List(ctx, true)
	if err != nil {
		s.logger.Error("加载地点失败", zap.Error(err))
		return nil, err
	}
	return &dto.GateResponse{
		WeekStart: weekStart,
		Allowed:   predicate(start, published, locations),
	}, nil
}

// ── 辅助函数 ──

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func toShiftResponse(shift *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:         shift.ShiftID,
		EmployeeID: shift.EmployeeID,
		LocationID: shift.LocationID,
		Date:       shift.Date.Format("2006-01-02"),
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		Published:  shift.Published,
	}
	if shift.Employee != nil {
		resp.EmployeeName = shift.Employee.Name
	}
	if shift.Location != nil {
		resp.LocationName = shift.Location.Name
	}
	return resp
}

func (s *scheduleService) toGenerateResponse(ctx context.Context, weekStart time.Time, scheduleType string, shifts []model.Shift) *dto.GenerateScheduleResponse {
	// 补全姓名/地点名供前端直接展示；查不到不阻塞响应
	empNames := make(map[string]string)
	locNames := make(map[string]string)
	if employees, err := s.repo.Employee.List(ctx); err == nil {
		for i := range employees {
			empNames[employees[i].EmployeeID] = employees[i].Name
		}
	}
	if locations, err := s.repo.Location.List(ctx, true); err == nil {
		for i := range locations {
			locNames[locations[i].LocationID] = locations[i].Name
		}
	}

	resp := &dto.GenerateScheduleResponse{
		WeekStart:    weekStart.Format("2006-01-02"),
		ScheduleType: scheduleType,
		ShiftCount:   len(shifts),
		Shifts:       make([]dto.ShiftResponse, 0, len(shifts)),
	}
	for i := range shifts {
		sr := toShiftResponse(&shifts[i])
		if sr.EmployeeName == "" {
			sr.EmployeeName = empNames[sr.EmployeeID]
		}
		if sr.LocationName == "" {
			sr.LocationName = locNames[sr.LocationID]
		}
		resp.Shifts = append(resp.Shifts, sr)
	}
	return resp
}
