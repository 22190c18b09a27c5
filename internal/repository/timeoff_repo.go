package repository

import (
	"context"

	"gorm.io/gorm"

	"echo-roster/internal/model"
	pkgerrors "echo-roster/pkg/errors"
)

// TimeOffRepository 休假申请数据访问接口
type TimeOffRepository interface {
	Create(ctx context.Context, to *model.TimeOff) error
	GetByID(ctx context.Context, id string) (*model.TimeOff, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.TimeOff, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.TimeOff, int64, error)
	UpdateStatus(ctx context.Context, to *model.TimeOff, status string, reviewedBy string) error
	Delete(ctx context.Context, id string) error
}

type timeOffRepo struct {
	db *gorm.DB
}

// NewTimeOffRepo 创建 TimeOffRepository 实例
func NewTimeOffRepo(db *gorm.DB) TimeOffRepository {
	return &timeOffRepo{db: db}
}

func (r *timeOffRepo) Create(ctx context.Context, to *model.TimeOff) error {
	return r.db.WithContext(ctx).Create(to).Error
}

func (r *timeOffRepo) GetByID(ctx context.Context, id string) (*model.TimeOff, error) {
	var to model.TimeOff
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("time_off_id = ?", id).
		First(&to).Error
	if err != nil {
		return nil, err
	}
	return &to, nil
}

func (r *timeOffRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.TimeOff, error) {
	var timeOffs []model.TimeOff
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&timeOffs).Error
	return timeOffs, err
}

func (r *timeOffRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.TimeOff, int64, error) {
	var timeOffs []model.TimeOff
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TimeOff{}).Where("status = ?", status)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("requested_at ASC").
		Find(&timeOffs).Error; err != nil {
		return nil, 0, err
	}
	return timeOffs, total, nil
}

// UpdateStatus 审批状态流转，乐观锁防止并发重复审批
func (r *timeOffRepo) UpdateStatus(ctx context.Context, to *model.TimeOff, status string, reviewedBy string) error {
	oldVersion := to.Version
	result := r.db.WithContext(ctx).
		Model(to).
		Where("time_off_id = ? AND version = ?", to.TimeOffID, oldVersion).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": reviewedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	to.Status = status
	to.Version = oldVersion + 1
	return nil
}

func (r *timeOffRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("time_off_id = ?", id).
		Delete(&model.TimeOff{}).Error
}
