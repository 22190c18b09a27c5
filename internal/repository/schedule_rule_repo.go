package repository

import (
	"context"

	"gorm.io/gorm"

	"echo-roster/internal/model"
	pkgerrors "echo-roster/pkg/errors"
)

// ScheduleRuleRepository 排班规则数据访问接口
type ScheduleRuleRepository interface {
	Create(ctx context.Context, rule *model.ScheduleRule) error
	GetByID(ctx context.Context, id string) (*model.ScheduleRule, error)
	List(ctx context.Context, enabledOnly bool) ([]model.ScheduleRule, error)
	Update(ctx context.Context, rule *model.ScheduleRule) error
	Delete(ctx context.Context, id string) error
}

type scheduleRuleRepo struct {
	db *gorm.DB
}

// NewScheduleRuleRepo 创建 ScheduleRuleRepository 实例
func NewScheduleRuleRepo(db *gorm.DB) ScheduleRuleRepository {
	return &scheduleRuleRepo{db: db}
}

func (r *scheduleRuleRepo) Create(ctx context.Context, rule *model.ScheduleRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *scheduleRuleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleRule, error) {
	var rule model.ScheduleRule
	err := r.db.WithContext(ctx).
		Where("rule_id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *scheduleRuleRepo) List(ctx context.Context, enabledOnly bool) ([]model.ScheduleRule, error) {
	var rules []model.ScheduleRule
	db := r.db.WithContext(ctx)

	if enabledOnly {
		db = db.Where("is_enabled = ?", true)
	}

	err := db.Order("is_builtin DESC, rule_name ASC").Find(&rules).Error
	return rules, err
}

// Update 乐观锁更新，并发修改返回 ErrOptimisticLock
func (r *scheduleRuleRepo) Update(ctx context.Context, rule *model.ScheduleRule) error {
	oldVersion := rule.Version
	result := r.db.WithContext(ctx).
		Model(rule).
		Where("rule_id = ? AND version = ?", rule.RuleID, oldVersion).
		Updates(map[string]interface{}{
			"rule_name":     rule.RuleName,
			"employee_name": rule.EmployeeName,
			"location_name": rule.LocationName,
			"weekdays":      rule.Weekdays,
			"is_enabled":    rule.IsEnabled,
			"updated_by":    rule.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	rule.Version = oldVersion + 1
	return nil
}

func (r *scheduleRuleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rule_id = ?", id).
		Delete(&model.ScheduleRule{}).Error
}
