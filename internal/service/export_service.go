package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"echo-roster/config"
	"echo-roster/internal/model"
	"echo-roster/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoShifts     = errors.New("该周没有已发布班次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 仅导出已发布班次，草稿不对外
//   - Excel 按地点行 × 星期列呈现一周排班
//   - ICS 输出 RFC 5545 日历，值班班次跨午夜时 DTEND 落在次日
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportScheduleExcel 导出一周排班为 Excel
	ExportScheduleExcel(ctx context.Context, weekStart string) (*bytes.Buffer, string, error)
	// ExportScheduleICS 导出一周排班为 iCalendar
	ExportScheduleICS(ctx context.Context, weekStart string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// loadPublishedWeek 加载一周内已发布班次，空结果视为业务错误
func (s *exportService) loadPublishedWeek(ctx context.Context, weekStart string) (time.Time, []model.Shift, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return time.Time{}, nil, ErrInvalidWeekStart
	}
	shifts, err := s.repo.Shift.ListPublished(ctx, start, start.AddDate(0, 0, 6))
	if err != nil {
		s.logger.Error("查询已发布班次失败", zap.Error(err))
		return time.Time{}, nil, err
	}
	if len(shifts) == 0 {
		return time.Time{}, nil, ErrExportNoShifts
	}
	return start, shifts, nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleExcel — 导出一周排班为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：地点名称
//   - 列头：周一 ~ 周日（含具体日期）
//   - 单元格：员工姓名 + 班次时间窗，同格多班次换行分隔

func (s *exportService) ExportScheduleExcel(ctx context.Context, weekStart string) (*bytes.Buffer, string, error) {
	start, shifts, err := s.loadPublishedWeek(ctx, weekStart)
	if err != nil {
		return nil, "", err
	}

	// 数据索引: "locationID:dayOffset" → 单元格文本
	cellIndex := make(map[string][]string)
	locNames := make(map[string]string)
	for i := range shifts {
		sh := &shifts[i]
		offset := int(sh.Date.Sub(start).Hours() / 24)
		if offset < 0 || offset > 6 {
			continue
		}

		name := "未知员工"
		if sh.Employee != nil {
			name = sh.Employee.Name
		}
		if sh.Location != nil {
			locNames[sh.LocationID] = sh.Location.Name
		}

		key := fmt.Sprintf("%s:%d", sh.LocationID, offset)
		cellIndex[key] = append(cellIndex[key], fmt.Sprintf("%s %s-%s", name, sh.StartTime, sh.EndTime))
	}

	// 地点按名称排序，保证导出顺序稳定
	var locIDs []string
	for id := range locNames {
		locIDs = append(locIDs, id)
	}
	sort.Slice(locIDs, func(i, j int) bool {
		return locNames[locIDs[i]] < locNames[locIDs[j]]
	})

	dayNames := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

	// 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	for i := 0; i < 7; i++ {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 22)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 周排班表", start.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", cell(colName(7), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "地点")
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		f.SetCellValue(sheetName, cell(colName(1+i), row),
			fmt.Sprintf("%s %s", dayNames[i], date.Format("01-02")))
	}

	// 数据行
	row = 3
	for _, locID := range locIDs {
		f.SetCellValue(sheetName, cell("A", row), locNames[locID])
		for i := 0; i < 7; i++ {
			key := fmt.Sprintf("%s:%d", locID, i)
			if texts, ok := cellIndex[key]; ok {
				sort.Strings(texts)
				f.SetCellValue(sheetName, cell(colName(1+i), row), joinLines(texts))
			} else {
				f.SetCellValue(sheetName, cell(colName(1+i), row), "-")
			}
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班表_%s.xlsx", start.Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleICS — 导出一周排班为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportScheduleICS(ctx context.Context, weekStart string) (*bytes.Buffer, string, error) {
	start, shifts, err := s.loadPublishedWeek(ctx, weekStart)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//echo-roster//schedule//CN")

	now := time.Now().UTC()
	for i := range shifts {
		sh := &shifts[i]

		startAt, err := combineDateTime(sh.Date, sh.StartTime)
		if err != nil {
			s.logger.Warn("班次开始时间非法，跳过",
				zap.String("shift_id", sh.ShiftID), zap.String("start_time", sh.StartTime))
			continue
		}
		endAt, err := combineDateTime(sh.Date, sh.EndTime)
		if err != nil {
			s.logger.Warn("班次结束时间非法，跳过",
				zap.String("shift_id", sh.ShiftID), zap.String("end_time", sh.EndTime))
			continue
		}
		// 跨午夜班次（值班 17:00-08:00）结束时间落在次日
		if !endAt.After(startAt) {
			endAt = endAt.AddDate(0, 0, 1)
		}

		summary := "排班"
		if sh.Employee != nil {
			summary = sh.Employee.Name
		}

		event := cal.AddEvent(sh.ShiftID)
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(summary)
		if sh.Location != nil {
			event.SetLocation(sh.Location.Name)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("排班表_%s.ics", start.Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func joinLines(lines []string) string {
	result := ""
	for i, l := range lines {
		if i > 0 {
			result += "\n"
		}
		result += l
	}
	return result
}

// combineDateTime 把日历日与 "15:04" 时刻拼成完整时间
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
