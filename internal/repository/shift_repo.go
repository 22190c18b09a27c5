package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"echo-roster/internal/model"
)

// ShiftRepository 班次数据访问接口。
// 生成与发布是两个独立动作：引擎产出的草稿批量入库，
// 发布操作单独把一周草稿置为 published。
type ShiftRepository interface {
	BatchCreate(ctx context.Context, shifts []model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListRange(ctx context.Context, from, to time.Time, publishedOnly bool) ([]model.Shift, error)
	ListPublished(ctx context.Context, from, to time.Time) ([]model.Shift, error)
	PublishRange(ctx context.Context, from, to time.Time, publishedBy string) (int64, error)
	DeleteDraftRange(ctx context.Context, from, to time.Time) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Location").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) ListRange(ctx context.Context, from, to time.Time, publishedOnly bool) ([]model.Shift, error) {
	var shifts []model.Shift
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Location").
		Where("date BETWEEN ? AND ?", from, to)

	if publishedOnly {
		db = db.Where("published = ?", true)
	}

	err := db.Order("date ASC, start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListPublished(ctx context.Context, from, to time.Time) ([]model.Shift, error) {
	return r.ListRange(ctx, from, to, true)
}

// PublishRange 把区间内全部草稿班次置为已发布，返回生效条数
func (r *shiftRepo) PublishRange(ctx context.Context, from, to time.Time, publishedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("date BETWEEN ? AND ? AND published = ?", from, to, false).
		Updates(map[string]interface{}{
			"published":  true,
			"updated_by": publishedBy,
		})
	return result.RowsAffected, result.Error
}

// DeleteDraftRange 清除区间内的草稿班次，重新生成前调用。已发布班次不受影响。
func (r *shiftRepo) DeleteDraftRange(ctx context.Context, from, to time.Time) error {
	return r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ? AND published = ?", from, to, false).
		Delete(&model.Shift{}).Error
}
