package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"echo-roster/internal/model"
	"echo-roster/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	order     []string
	employees map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.EmployeeID == "" {
		emp.EmployeeID = fmt.Sprintf("emp-%d", len(m.order)+1)
	}
	m.order = append(m.order, emp.EmployeeID)
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, id := range m.order {
		result = append(result, *m.employees[id])
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListWithTimeOffs(ctx context.Context) ([]model.Employee, error) {
	return m.List(ctx)
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) ReplaceAvailability(_ context.Context, employeeID string, days []model.Weekday) error {
	emp, ok := m.employees[employeeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	emp.Availability = emp.Availability[:0]
	for _, d := range days {
		emp.Availability = append(emp.Availability, model.EmployeeAvailability{
			EmployeeID: employeeID, Day: d,
		})
	}
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.employees, id)
	for i, eid := range m.order {
		if eid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	order     []string
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.LocationID == "" {
		loc.LocationID = fmt.Sprintf("loc-%d", len(m.order)+1)
	}
	m.order = append(m.order, loc.LocationID)
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByName(_ context.Context, name string) (*model.Location, error) {
	for _, id := range m.order {
		if m.locations[id].Name == name {
			return m.locations[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context, includeInactive bool) ([]model.Location, error) {
	var result []model.Location
	for _, id := range m.order {
		loc := m.locations[id]
		if !includeInactive && !loc.IsActive {
			continue
		}
		result = append(result, *loc)
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.locations, id)
	for i, lid := range m.order {
		if lid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock TimeOffRepository ──

type mockTimeOffRepo struct {
	order    []string
	timeOffs map[string]*model.TimeOff
}

func newMockTimeOffRepo() *mockTimeOffRepo {
	return &mockTimeOffRepo{timeOffs: make(map[string]*model.TimeOff)}
}

func (m *mockTimeOffRepo) Create(_ context.Context, to *model.TimeOff) error {
	if to.TimeOffID == "" {
		to.TimeOffID = fmt.Sprintf("to-%d", len(m.order)+1)
	}
	if to.Version == 0 {
		to.Version = 1
	}
	m.order = append(m.order, to.TimeOffID)
	m.timeOffs[to.TimeOffID] = to
	return nil
}

func (m *mockTimeOffRepo) GetByID(_ context.Context, id string) (*model.TimeOff, error) {
	if to, ok := m.timeOffs[id]; ok {
		return to, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeOffRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.TimeOff, error) {
	var result []model.TimeOff
	for _, id := range m.order {
		if m.timeOffs[id].EmployeeID == employeeID {
			result = append(result, *m.timeOffs[id])
		}
	}
	return result, nil
}

func (m *mockTimeOffRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.TimeOff, int64, error) {
	var all []model.TimeOff
	for _, id := range m.order {
		if m.timeOffs[id].Status == status {
			all = append(all, *m.timeOffs[id])
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockTimeOffRepo) UpdateStatus(_ context.Context, to *model.TimeOff, status string, _ string) error {
	stored, ok := m.timeOffs[to.TimeOffID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = status
	stored.Version++
	to.Status = status
	to.Version = stored.Version
	return nil
}

func (m *mockTimeOffRepo) Delete(_ context.Context, id string) error {
	delete(m.timeOffs, id)
	for i, tid := range m.order {
		if tid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts []model.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{}
}

func (m *mockShiftRepo) BatchCreate(_ context.Context, shifts []model.Shift) error {
	m.shifts = append(m.shifts, shifts...)
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	for i := range m.shifts {
		if m.shifts[i].ShiftID == id {
			return &m.shifts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}

func (m *mockShiftRepo) ListRange(_ context.Context, from, to time.Time, publishedOnly bool) ([]model.Shift, error) {
	var result []model.Shift
	for i := range m.shifts {
		s := m.shifts[i]
		if !inRange(s.Date, from, to) {
			continue
		}
		if publishedOnly && !s.Published {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockShiftRepo) ListPublished(ctx context.Context, from, to time.Time) ([]model.Shift, error) {
	return m.ListRange(ctx, from, to, true)
}

func (m *mockShiftRepo) PublishRange(_ context.Context, from, to time.Time, _ string) (int64, error) {
	var count int64
	for i := range m.shifts {
		s := &m.shifts[i]
		if inRange(s.Date, from, to) && !s.Published {
			s.Published = true
			count++
		}
	}
	return count, nil
}

func (m *mockShiftRepo) DeleteDraftRange(_ context.Context, from, to time.Time) error {
	var kept []model.Shift
	for i := range m.shifts {
		s := m.shifts[i]
		if inRange(s.Date, from, to) && !s.Published {
			continue
		}
		kept = append(kept, s)
	}
	m.shifts = kept
	return nil
}

// ── Mock ScheduleRuleRepository ──

type mockScheduleRuleRepo struct {
	order []string
	rules map[string]*model.ScheduleRule
}

func newMockScheduleRuleRepo() *mockScheduleRuleRepo {
	return &mockScheduleRuleRepo{rules: make(map[string]*model.ScheduleRule)}
}

func (m *mockScheduleRuleRepo) Create(_ context.Context, rule *model.ScheduleRule) error {
	if rule.RuleID == "" {
		rule.RuleID = fmt.Sprintf("rule-%d", len(m.order)+1)
	}
	if rule.Version == 0 {
		rule.Version = 1
	}
	m.order = append(m.order, rule.RuleID)
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockScheduleRuleRepo) GetByID(_ context.Context, id string) (*model.ScheduleRule, error) {
	if r, ok := m.rules[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRuleRepo) List(_ context.Context, enabledOnly bool) ([]model.ScheduleRule, error) {
	var result []model.ScheduleRule
	for _, id := range m.order {
		r := m.rules[id]
		if enabledOnly && !r.IsEnabled {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockScheduleRuleRepo) Update(_ context.Context, rule *model.ScheduleRule) error {
	stored, ok := m.rules[rule.RuleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rule.Version = stored.Version + 1
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockScheduleRuleRepo) Delete(_ context.Context, id string) error {
	delete(m.rules, id)
	for i, rid := range m.order {
		if rid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	order []string
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.order)+1)
	}
	m.order = append(m.order, user.UserID)
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, id := range m.order {
		if m.users[id].Username == username {
			return m.users[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, id := range m.order {
		all = append(all, *m.users[id])
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── 聚合 ──

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Employee:     newMockEmployeeRepo(),
		Location:     newMockLocationRepo(),
		TimeOff:      newMockTimeOffRepo(),
		Shift:        newMockShiftRepo(),
		ScheduleRule: newMockScheduleRuleRepo(),
		User:         newMockUserRepo(),
	}
}
