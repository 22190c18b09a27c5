//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "echo-roster/pkg/errors"

	"echo-roster/internal/model"
	"echo-roster/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=echo_roster password=echo_roster_password dbname=echo_roster_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.EmployeeAvailability{},
		&model.TimeOff{},
		&model.Location{},
		&model.Shift{},
		&model.ScheduleRule{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	// 清理测试数据
	testDB.Exec("TRUNCATE shifts, schedule_rules, time_offs, employee_availabilities, employees, locations, users CASCADE")

	os.Exit(code)
}

func mustCreateEmployee(t *testing.T, name string) *model.Employee {
	t.Helper()
	emp := &model.Employee{Name: name, Role: model.RoleStaff, MaxHoursPerDay: 8}
	if err := repository.NewEmployeeRepo(testDB).Create(context.Background(), emp); err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	return emp
}

func mustCreateLocation(t *testing.T, name string) *model.Location {
	t.Helper()
	loc := &model.Location{Name: name, IsActive: true}
	if err := repository.NewLocationRepo(testDB).Create(context.Background(), loc); err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}
	return loc
}

// ═══════════════════════════════════════════════════════════
// Shift Repository
// ═══════════════════════════════════════════════════════════

func TestShiftPublishRangeOnlyFlipsDrafts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewShiftRepo(testDB)

	emp := mustCreateEmployee(t, "集成-发布测试员工")
	loc := mustCreateLocation(t, "集成-发布测试地点")
	weekStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	shifts := []model.Shift{
		{EmployeeID: emp.EmployeeID, LocationID: loc.LocationID, Date: weekStart, StartTime: "08:00", EndTime: "17:00"},
		{EmployeeID: emp.EmployeeID, LocationID: loc.LocationID, Date: weekStart.AddDate(0, 0, 1), StartTime: "08:00", EndTime: "17:00"},
	}
	if err := repo.BatchCreate(ctx, shifts); err != nil {
		t.Fatalf("BatchCreate 失败: %v", err)
	}

	affected, err := repo.PublishRange(ctx, weekStart, weekStart.AddDate(0, 0, 6), emp.EmployeeID)
	if err != nil {
		t.Fatalf("PublishRange 失败: %v", err)
	}
	if affected != 2 {
		t.Fatalf("应发布 2 条草稿，实际 %d", affected)
	}

	// 再次发布同一区间应无草稿可翻转
	affected, err = repo.PublishRange(ctx, weekStart, weekStart.AddDate(0, 0, 6), emp.EmployeeID)
	if err != nil {
		t.Fatalf("PublishRange 失败: %v", err)
	}
	if affected != 0 {
		t.Fatalf("重复发布不应再翻转草稿，实际 %d", affected)
	}

	published, err := repo.ListPublished(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("ListPublished 失败: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("已发布班次应为 2 条，实际 %d", len(published))
	}
}

func TestShiftDeleteDraftRangeKeepsPublished(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewShiftRepo(testDB)

	emp := mustCreateEmployee(t, "集成-草稿清理员工")
	loc := mustCreateLocation(t, "集成-草稿清理地点")
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	shifts := []model.Shift{
		{EmployeeID: emp.EmployeeID, LocationID: loc.LocationID, Date: weekStart, StartTime: "08:00", EndTime: "17:00", Published: true},
		{EmployeeID: emp.EmployeeID, LocationID: loc.LocationID, Date: weekStart, StartTime: "17:00", EndTime: "08:00"},
	}
	if err := repo.BatchCreate(ctx, shifts); err != nil {
		t.Fatalf("BatchCreate 失败: %v", err)
	}

	if err := repo.DeleteDraftRange(ctx, weekStart, weekStart.AddDate(0, 0, 6)); err != nil {
		t.Fatalf("DeleteDraftRange 失败: %v", err)
	}

	remaining, err := repo.ListRange(ctx, weekStart, weekStart.AddDate(0, 0, 6), false)
	if err != nil {
		t.Fatalf("ListRange 失败: %v", err)
	}
	if len(remaining) != 1 || !remaining[0].Published {
		t.Fatalf("草稿清理后应只剩已发布班次，实际 %d 条", len(remaining))
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleRule Repository
// ═══════════════════════════════════════════════════════════

func TestScheduleRuleOptimisticLock(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewScheduleRuleRepo(testDB)

	rule := &model.ScheduleRule{
		RuleCode:     model.RuleCodeFixedWeekday,
		RuleName:     "集成-乐观锁规则",
		EmployeeName: "Emilio",
		LocationName: "THC",
		Weekdays:     model.IntArray{0, 1},
		IsEnabled:    true,
	}
	if err := repo.Create(ctx, rule); err != nil {
		t.Fatalf("创建规则失败: %v", err)
	}

	stale := *rule
	rule.RuleName = "集成-乐观锁规则-改"
	if err := repo.Update(ctx, rule); err != nil {
		t.Fatalf("首次更新应成功: %v", err)
	}

	stale.RuleName = "集成-乐观锁规则-旧版本"
	if err := repo.Update(ctx, &stale); err != pkgerrors.ErrOptimisticLock {
		t.Fatalf("过期版本更新应返回 ErrOptimisticLock，实际: %v", err)
	}
}
