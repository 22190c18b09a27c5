package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"echo-roster/internal/dto"
	"echo-roster/internal/model"
	"echo-roster/internal/repository"
)

// ── 休假模块业务错误 ──

var (
	ErrTimeOffNotFound        = errors.New("休假申请不存在")
	ErrInvalidTimeOffRange    = errors.New("休假开始日期不能晚于结束日期")
	ErrInvalidTimeOffDate     = errors.New("休假日期格式错误")
	ErrTimeOffAlreadyReviewed = errors.New("休假申请已审批，不可重复操作")
)

// TimeOffService 休假业务接口。
// 日期区间合法性（start ≤ end）在申请创建时校验，
// 排班引擎只消费已批准的申请，不再做区间检查。
type TimeOffService interface {
	Create(ctx context.Context, req *dto.CreateTimeOffRequest, callerID string) (*dto.TimeOffResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeOffResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]dto.TimeOffResponse, error)
	List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error)
	Review(ctx context.Context, id string, req *dto.ReviewTimeOffRequest, callerID string) (*dto.TimeOffResponse, error)
	Delete(ctx context.Context, id string) error
}

type timeOffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeOffService 创建 TimeOffService 实例
func NewTimeOffService(repo *repository.Repository, logger *zap.Logger) TimeOffService {
	return &timeOffService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timeOffService) Create(ctx context.Context, req *dto.CreateTimeOffRequest, callerID string) (*dto.TimeOffResponse, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidTimeOffDate
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidTimeOffDate
	}
	if start.After(end) {
		return nil, ErrInvalidTimeOffRange
	}

	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	to := &model.TimeOff{
		EmployeeID:  req.EmployeeID,
		StartDate:   start,
		EndDate:     end,
		Status:      model.TimeOffStatusPending,
		RequestedAt: time.Now().UTC(),
	}
	to.CreatedBy = &callerID
	to.UpdatedBy = &callerID

	if err := s.repo.TimeOff.Create(ctx, to); err != nil {
		s.logger.Error("创建休假申请失败", zap.Error(err))
		return nil, err
	}

	return s.toTimeOffResponse(to), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *timeOffService) GetByID(ctx context.Context, id string) (*dto.TimeOffResponse, error) {
	to, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("查询休假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toTimeOffResponse(to), nil
}

// ────────────────────── List ──────────────────────

func (s *timeOffService) ListByEmployee(ctx context.Context, employeeID string) ([]dto.TimeOffResponse, error) {
	timeOffs, err := s.repo.TimeOff.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询员工休假失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimeOffResponse, 0, len(timeOffs))
	for i := range timeOffs {
		result = append(result, *s.toTimeOffResponse(&timeOffs[i]))
	}
	return result, nil
}

func (s *timeOffService) List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error) {
	status := req.Status
	if status == "" {
		status = model.TimeOffStatusPending
	}
	timeOffs, total, err := s.repo.TimeOff.ListByStatus(ctx, status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询休假列表失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.TimeOffResponse, 0, len(timeOffs))
	for i := range timeOffs {
		result = append(result, *s.toTimeOffResponse(&timeOffs[i]))
	}
	return result, total, nil
}

// ────────────────────── Review ──────────────────────

func (s *timeOffService) Review(ctx context.Context, id string, req *dto.ReviewTimeOffRequest, callerID string) (*dto.TimeOffResponse, error) {
	to, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("查询休假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if to.Status != model.TimeOffStatusPending {
		return nil, ErrTimeOffAlreadyReviewed
	}

	if err := s.repo.TimeOff.UpdateStatus(ctx, to, req.Status, callerID); err != nil {
		s.logger.Error("审批休假失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("休假申请已审批",
		zap.String("time_off_id", id),
		zap.String("status", req.Status))

	return s.toTimeOffResponse(to), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timeOffService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.TimeOff.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeOffNotFound
		}
		return err
	}
	return s.repo.TimeOff.Delete(ctx, id)
}

// ── 响应转换 ──

func (s *timeOffService) toTimeOffResponse(to *model.TimeOff) *dto.TimeOffResponse {
	resp := &dto.TimeOffResponse{
		ID:          to.TimeOffID,
		EmployeeID:  to.EmployeeID,
		StartDate:   to.StartDate.Format("2006-01-02"),
		EndDate:     to.EndDate.Format("2006-01-02"),
		Status:      to.Status,
		RequestedAt: to.RequestedAt.Format("2006-01-02 15:04:05"),
	}
	if to.Employee != nil {
		resp.EmployeeName = to.Employee.Name
	}
	return resp
}
