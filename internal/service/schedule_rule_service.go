package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"echo-roster/internal/dto"
	"echo-roster/internal/model"
	"echo-roster/internal/repository"
)

// ── 排班规则模块业务错误 ──

var (
	ErrScheduleRuleNotFound = errors.New("排班规则不存在")
	ErrBuiltinRuleDelete    = errors.New("内置规则不可删除，只能停用")
)

// ScheduleRuleService 排班规则业务接口。
// 规则是数据：固定指派由规则表驱动，而非写死在引擎里。
type ScheduleRuleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRuleRequest, callerID string) (*dto.ScheduleRuleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleRuleResponse, error)
	List(ctx context.Context) ([]dto.ScheduleRuleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRuleRequest, callerID string) (*dto.ScheduleRuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type scheduleRuleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleRuleService 创建 ScheduleRuleService 实例
func NewScheduleRuleService(repo *repository.Repository, logger *zap.Logger) ScheduleRuleService {
	return &scheduleRuleService{repo: repo, logger: logger}
}

func (s *scheduleRuleService) Create(ctx context.Context, req *dto.CreateScheduleRuleRequest, callerID string) (*dto.ScheduleRuleResponse, error) {
	days, err := validateAvailability(req.Weekdays)
	if err != nil {
		return nil, err
	}
	weekdays := make(model.IntArray, 0, len(days))
	for _, d := range days {
		weekdays = append(weekdays, int(d))
	}

	rule := &model.ScheduleRule{
		RuleCode:     model.RuleCodeFixedWeekday,
		RuleName:     req.RuleName,
		EmployeeName: req.EmployeeName,
		LocationName: req.LocationName,
		Weekdays:     weekdays,
		IsEnabled:    true,
	}
	rule.CreatedBy = &callerID
	rule.UpdatedBy = &callerID

	if err := s.repo.ScheduleRule.Create(ctx, rule); err != nil {
		s.logger.Error("创建排班规则失败", zap.Error(err))
		return nil, err
	}

	return s.toRuleResponse(rule), nil
}

func (s *scheduleRuleService) GetByID(ctx context.Context, id string) (*dto.ScheduleRuleResponse, error) {
	rule, err := s.repo.ScheduleRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleRuleNotFound
		}
		s.logger.Error("查询排班规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toRuleResponse(rule), nil
}

func (s *scheduleRuleService) List(ctx context.Context) ([]dto.ScheduleRuleResponse, error) {
	rules, err := s.repo.ScheduleRule.List(ctx, false)
	if err != nil {
		s.logger.Error("列出排班规则失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleRuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *s.toRuleResponse(&rules[i]))
	}
	return result, nil
}

func (s *scheduleRuleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRuleRequest, callerID string) (*dto.ScheduleRuleResponse, error) {
	rule, err := s.repo.ScheduleRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleRuleNotFound
		}
		s.logger.Error("查询排班规则失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.RuleName != nil {
		rule.RuleName = *req.RuleName
	}
	if req.EmployeeName != nil {
		rule.EmployeeName = *req.EmployeeName
	}
	if req.LocationName != nil {
		rule.LocationName = *req.LocationName
	}
	if req.Weekdays != nil {
		days, err := validateAvailability(*req.Weekdays)
		if err != nil {
			return nil, err
		}
		weekdays := make(model.IntArray, 0, len(days))
		for _, d := range days {
			weekdays = append(weekdays, int(d))
		}
		rule.Weekdays = weekdays
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}
	rule.UpdatedBy = &callerID

	if err := s.repo.ScheduleRule.Update(ctx, rule); err != nil {
		s.logger.Error("更新排班规则失败", zap.Error(err))
		return nil, err
	}

	return s.toRuleResponse(rule), nil
}

func (s *scheduleRuleService) Delete(ctx context.Context, id string) error {
	rule, err := s.repo.ScheduleRule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleRuleNotFound
		}
		return err
	}
	if rule.IsBuiltin {
		return ErrBuiltinRuleDelete
	}
	return s.repo.ScheduleRule.Delete(ctx, id)
}

// ── 响应转换 ──

func (s *scheduleRuleService) toRuleResponse(rule *model.ScheduleRule) *dto.ScheduleRuleResponse {
	return &dto.ScheduleRuleResponse{
		ID:           rule.RuleID,
		RuleCode:     rule.RuleCode,
		RuleName:     rule.RuleName,
		EmployeeName: rule.EmployeeName,
		LocationName: rule.LocationName,
		Weekdays:     []int(rule.Weekdays),
		IsEnabled:    rule.IsEnabled,
		IsBuiltin:    rule.IsBuiltin,
		UpdatedAt:    rule.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
