package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"echo-roster/internal/dto"
	"echo-roster/internal/service"
	"echo-roster/pkg/jwt"
	"echo-roster/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	logoutErr     error
	getMeResult   *dto.UserDetailResponse
	getMeErr      error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetMe(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.getMeResult, m.getMeErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	previewResult   *dto.GenerateScheduleResponse
	previewErr      error
	generateResult  *dto.GenerateScheduleResponse
	generateErr     error
	publishResult   *dto.PublishScheduleResponse
	publishErr      error
	weekResult      []dto.ShiftResponse
	weekErr         error
	publishedResult []dto.ShiftResponse
	publishedErr    error
	gateResult      *dto.GateResponse
	gateErr         error
}

func (m *mockScheduleService) Preview(_ context.Context, _ *dto.PreviewScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	return m.previewResult, m.previewErr
}
func (m *mockScheduleService) Generate(_ context.Context, _ *dto.GenerateScheduleRequest, _ string) (*dto.GenerateScheduleResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockScheduleService) Publish(_ context.Context, _ *dto.PublishScheduleRequest, _ string) (*dto.PublishScheduleResponse, error) {
	return m.publishResult, m.publishErr
}
func (m *mockScheduleService) ListWeek(_ context.Context, _ string) ([]dto.ShiftResponse, error) {
	return m.weekResult, m.weekErr
}
func (m *mockScheduleService) ListPublishedWeek(_ context.Context, _ string) ([]dto.ShiftResponse, error) {
	return m.publishedResult, m.publishedErr
}
func (m *mockScheduleService) OnCallPublished(_ context.Context, _ string) (*dto.GateResponse, error) {
	return m.gateResult, m.gateErr
}
func (m *mockScheduleService) CanGenerateEchoLab(_ context.Context, _ string) (*dto.GateResponse, error) {
	return m.gateResult, m.gateErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportScheduleExcel(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportScheduleICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{UserID: "test-user-id", Role: "admin"})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken: "test-access-token",
			ExpiresIn:   43200,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "s3cret",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_GetMe_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		getMeResult: &dto.UserDetailResponse{
			ID:       "test-user-id",
			Username: "admin",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.GetMe(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Generate_Success(t *testing.T) {
	mock := &mockScheduleService{
		generateResult: &dto.GenerateScheduleResponse{
			WeekStart:    "2024-01-01",
			ScheduleType: "echolab",
			ShiftCount:   6,
		},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/generate", jsonBody(dto.GenerateScheduleRequest{
		WeekStart:    "2024-01-01",
		ScheduleType: "echolab",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestScheduleHandler_Generate_GateRejected(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{generateErr: service.ErrOnCallNotPublished})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/generate", jsonBody(dto.GenerateScheduleRequest{
		WeekStart:    "2024-01-01",
		ScheduleType: "echolab",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18003 {
		t.Errorf("expected error code 18003, got %d", resp.Code)
	}
}

func TestScheduleHandler_Generate_UnknownType(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{generateErr: service.ErrUnknownScheduleType})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/generate", jsonBody(dto.GenerateScheduleRequest{
		WeekStart:    "2024-01-01",
		ScheduleType: "quarterly",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/generate", func(c *gin.Context) {
		setAuth(c)
		h.GenerateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Publish_NothingToPublish(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{publishErr: service.ErrNothingToPublish})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/publish", jsonBody(dto.PublishScheduleRequest{
		WeekStart: "2024-01-01",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/publish", func(c *gin.Context) {
		setAuth(c)
		h.PublishSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestScheduleHandler_ListWeek_MissingParam(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedules/week", nil)

	r := gin.New()
	r.GET("/schedules/week", h.ListWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Gate_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{
		gateResult: &dto.GateResponse{WeekStart: "2024-01-01", Allowed: true},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedules/gates/echolab?week_start=2024-01-01", nil)

	r := gin.New()
	r.GET("/schedules/gates/echolab", h.GetEchoLabGate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Excel_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-content"),
		filename: "排班表_2024-01-01.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/schedule.xlsx?week_start=2024-01-01", nil)

	r := gin.New()
	r.GET("/export/schedule.xlsx", h.ExportScheduleExcel)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header to be set")
	}
	if w.Body.String() != "xlsx-content" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestExportHandler_ICS_NoShifts(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoShifts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/schedule.ics?week_start=2024-01-01", nil)

	r := gin.New()
	r.GET("/export/schedule.ics", h.ExportScheduleICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}
