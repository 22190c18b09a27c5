package repository

import (
	"context"

	"gorm.io/gorm"

	"echo-roster/internal/model"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListWithTimeOffs(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	ReplaceAvailability(ctx context.Context, employeeID string, days []model.Weekday) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Preload("Availability").
		Preload("TimeOffs").
		Where("employee_id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Preload("Availability").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

// ListWithTimeOffs 排班引擎专用：连同休假记录一并加载
func (r *employeeRepo) ListWithTimeOffs(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Preload("Availability").
		Preload("TimeOffs").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

// ReplaceAvailability 整体替换员工的每周可用日集合
func (r *employeeRepo) ReplaceAvailability(ctx context.Context, employeeID string, days []model.Weekday) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).
			Delete(&model.EmployeeAvailability{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		rows := make([]model.EmployeeAvailability, 0, len(days))
		for _, d := range days {
			rows = append(rows, model.EmployeeAvailability{EmployeeID: employeeID, Day: d})
		}
		return tx.Create(&rows).Error
	})
}

func (r *employeeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
