package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"echo-roster/internal/dto"
	"echo-roster/internal/model"
)

func TestScheduleRuleCreate(t *testing.T) {
	repo := newTestRepo()
	svc := NewScheduleRuleService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), &dto.CreateScheduleRuleRequest{
		RuleName:     "Emilio 固定 THC",
		EmployeeName: "Emilio",
		LocationName: "THC",
		Weekdays:     []int{0, 1, 2, 3},
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建排班规则应成功: %v", err)
	}
	if resp.RuleCode != model.RuleCodeFixedWeekday {
		t.Fatalf("规则类型应为 FIXED_WEEKDAY, got %s", resp.RuleCode)
	}
	if !resp.IsEnabled {
		t.Fatal("新建规则应默认启用")
	}
	if resp.IsBuiltin {
		t.Fatal("接口创建的规则不应标记为内置")
	}

	_, err = svc.Create(context.Background(), &dto.CreateScheduleRuleRequest{
		RuleName:     "非法规则",
		EmployeeName: "X",
		LocationName: "Y",
		Weekdays:     []int{2, 2},
	}, "admin-1")
	if !errors.Is(err, ErrDuplicateWeekday) {
		t.Fatalf("重复星期应返回 ErrDuplicateWeekday, got %v", err)
	}
}

func TestScheduleRuleUpdateToggleEnabled(t *testing.T) {
	repo := newTestRepo()
	seedBuiltinRules(t, repo)
	svc := NewScheduleRuleService(repo, zap.NewNop())

	rules, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("列出规则应成功: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("内置规则应为 2 条, got %d", len(rules))
	}

	disabled := false
	updated, err := svc.Update(context.Background(), rules[0].ID, &dto.UpdateScheduleRuleRequest{
		IsEnabled: &disabled,
	}, "admin-1")
	if err != nil {
		t.Fatalf("停用规则应成功: %v", err)
	}
	if updated.IsEnabled {
		t.Fatal("规则应已停用")
	}
}

func TestScheduleRuleBuiltinDeleteBlocked(t *testing.T) {
	repo := newTestRepo()
	seedBuiltinRules(t, repo)
	svc := NewScheduleRuleService(repo, zap.NewNop())

	rules, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("列出规则应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), rules[0].ID); !errors.Is(err, ErrBuiltinRuleDelete) {
		t.Fatalf("删除内置规则应返回 ErrBuiltinRuleDelete, got %v", err)
	}

	custom, err := svc.Create(context.Background(), &dto.CreateScheduleRuleRequest{
		RuleName:     "临时规则",
		EmployeeName: "Ana",
		LocationName: "THC",
		Weekdays:     []int{2},
	}, "admin-1")
	if err != nil {
		t.Fatalf("创建自定义规则应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), custom.ID); err != nil {
		t.Fatalf("删除自定义规则应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), custom.ID); !errors.Is(err, ErrScheduleRuleNotFound) {
		t.Fatalf("删除后查询应返回 ErrScheduleRuleNotFound, got %v", err)
	}
}

func TestScheduleRuleDisabledExcludedFromGeneration(t *testing.T) {
	repo := newTestRepo()
	seedBuiltinRules(t, repo)
	svc := NewScheduleRuleService(repo, zap.NewNop())

	rules, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("列出规则应成功: %v", err)
	}
	disabled := false
	for _, r := range rules {
		if _, err := svc.Update(context.Background(), r.ID, &dto.UpdateScheduleRuleRequest{
			IsEnabled: &disabled,
		}, "admin-1"); err != nil {
			t.Fatalf("停用规则应成功: %v", err)
		}
	}

	enabled, err := repo.ScheduleRule.List(context.Background(), true)
	if err != nil {
		t.Fatalf("查询启用规则应成功: %v", err)
	}
	if len(enabled) != 0 {
		t.Fatalf("全部停用后启用规则应为空, got %d", len(enabled))
	}
}
