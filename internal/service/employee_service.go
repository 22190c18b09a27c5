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

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound    = errors.New("员工不存在")
	ErrDuplicateWeekday    = errors.New("可用日集合存在重复")
	ErrInvalidAvailability = errors.New("可用日必须在 0-6 之间")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// validateAvailability 校验可用日集合：范围 0-6 且无重复
func validateAvailability(days []int) ([]model.Weekday, error) {
	seen := make(map[int]bool, len(days))
	result := make([]model.Weekday, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, ErrInvalidAvailability
		}
		if seen[d] {
			return nil, ErrDuplicateWeekday
		}
		seen[d] = true
		result = append(result, model.Weekday(d))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	days, err := validateAvailability(req.Availability)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}
	maxHours := req.MaxHoursPerDay
	if maxHours <= 0 {
		maxHours = 8.0
	}

	emp := &model.Employee{
		Name:           req.Name,
		Age:            req.Age,
		Role:           role,
		MaxHoursPerDay: maxHours,
	}
	emp.CreatedBy = &callerID
	emp.UpdatedBy = &callerID

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}
	if len(days) > 0 {
		if err := s.repo.Employee.ReplaceAvailability(ctx, emp.EmployeeID, days); err != nil {
			s.logger.Error("写入员工可用日失败", zap.Error(err))
			return nil, err
		}
		// 仓储实现可能已回填 Availability，重建而非追加
		emp.Availability = emp.Availability[:0]
		for _, d := range days {
			emp.Availability = append(emp.Availability, model.EmployeeAvailability{
				EmployeeID: emp.EmployeeID, Day: d,
			})
		}
	}

	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *s.toEmployeeResponse(&employees[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Age != nil {
		emp.Age = *req.Age
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.MaxHoursPerDay != nil {
		emp.MaxHoursPerDay = *req.MaxHoursPerDay
	}
	emp.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err))
		return nil, err
	}

	if req.Availability != nil {
		days, err := validateAvailability(*req.Availability)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Employee.ReplaceAvailability(ctx, emp.EmployeeID, days); err != nil {
			s.logger.Error("更新员工可用日失败", zap.Error(err))
			return nil, err
		}
		emp.Availability = emp.Availability[:0]
		for _, d := range days {
			emp.Availability = append(emp.Availability, model.EmployeeAvailability{
				EmployeeID: emp.EmployeeID, Day: d,
			})
		}
	}

	return s.toEmployeeResponse(emp), nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Employee.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除员工失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 响应转换 ──

func (s *employeeService) toEmployeeResponse(emp *model.Employee) *dto.EmployeeResponse {
	days := make([]int, 0, len(emp.Availability))
	for _, d := range emp.AvailabilityDays() {
		days = append(days, int(d))
	}
	return &dto.EmployeeResponse{
		ID:             emp.EmployeeID,
		Name:           emp.Name,
		Age:            emp.Age,
		Role:           emp.Role,
		MaxHoursPerDay: emp.MaxHoursPerDay,
		Availability:   days,
		CreatedAt:      emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
