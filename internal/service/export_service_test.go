package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"echo-roster/internal/model"
	"echo-roster/internal/repository"
	"echo-roster/internal/scheduler"
)

func newTestExportService(repo *repository.Repository) ExportService {
	return NewExportService(nil, repo, zap.NewNop())
}

// seedPublishedShift 预置一条带关联对象的已发布班次
func seedPublishedShift(t *testing.T, repo *repository.Repository, id string, emp *model.Employee, loc *model.Location, date time.Time, startTime, endTime string) {
	t.Helper()
	shift := model.Shift{
		ShiftID:    id,
		EmployeeID: emp.EmployeeID,
		LocationID: loc.LocationID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Published:  true,
		Employee:   emp,
		Location:   loc,
	}
	if err := repo.Shift.BatchCreate(context.Background(), []model.Shift{shift}); err != nil {
		t.Fatalf("预置已发布班次应成功: %v", err)
	}
}

func TestExportEmptyWeek(t *testing.T) {
	repo := newTestRepo()
	svc := newTestExportService(repo)

	if _, _, err := svc.ExportScheduleExcel(context.Background(), testWeekStart); !errors.Is(err, ErrExportNoShifts) {
		t.Fatalf("空周导出 Excel 应返回 ErrExportNoShifts, got %v", err)
	}
	if _, _, err := svc.ExportScheduleICS(context.Background(), testWeekStart); !errors.Is(err, ErrExportNoShifts) {
		t.Fatalf("空周导出 ICS 应返回 ErrExportNoShifts, got %v", err)
	}
	if _, _, err := svc.ExportScheduleExcel(context.Background(), "bad-date"); !errors.Is(err, ErrInvalidWeekStart) {
		t.Fatalf("非法日期应返回 ErrInvalidWeekStart, got %v", err)
	}
}

func TestExportScheduleExcel(t *testing.T) {
	repo := newTestRepo()
	emp := seedEmployee(t, repo, "Emilio", model.RoleStaff, weekdaysAll)
	loc := seedLocation(t, repo, "THC")
	start, _ := time.Parse("2006-01-02", testWeekStart)
	seedPublishedShift(t, repo, "x-1", emp, loc, start, scheduler.DayShiftStart, scheduler.DayShiftEnd)

	svc := newTestExportService(repo)
	buf, filename, err := svc.ExportScheduleExcel(context.Background(), testWeekStart)
	if err != nil {
		t.Fatalf("导出 Excel 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Excel 导出内容不应为空")
	}
	if filename != "排班表_2024-01-01.xlsx" {
		t.Fatalf("Excel 文件名不符: %s", filename)
	}
}

func TestExportScheduleICS(t *testing.T) {
	repo := newTestRepo()
	emp := seedEmployee(t, repo, "Emilio", model.RoleStaff, weekdaysAll)
	loc := seedLocation(t, repo, "JDCH")
	start, _ := time.Parse("2006-01-02", testWeekStart)
	// 值班班次跨午夜
	seedPublishedShift(t, repo, "x-oncall", emp, loc, start, scheduler.OnCallShiftStart, scheduler.OnCallShiftEnd)

	svc := newTestExportService(repo)
	buf, filename, err := svc.ExportScheduleICS(context.Background(), testWeekStart)
	if err != nil {
		t.Fatalf("导出 ICS 应成功: %v", err)
	}
	if filename != "排班表_2024-01-01.ics" {
		t.Fatalf("ICS 文件名不符: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Fatal("ICS 应包含 VEVENT")
	}
	if !strings.Contains(content, "SUMMARY:Emilio") {
		t.Fatal("ICS 事件摘要应为员工姓名")
	}
	if !strings.Contains(content, "LOCATION:JDCH") {
		t.Fatal("ICS 事件应包含地点")
	}
	// 17:00-08:00 跨午夜：DTEND 应落在次日
	if !strings.Contains(content, "DTSTART:20240101T170000") {
		t.Fatalf("ICS DTSTART 不符:\n%s", content)
	}
	if !strings.Contains(content, "DTEND:20240102T080000") {
		t.Fatalf("跨午夜班次 DTEND 应在次日:\n%s", content)
	}
}
