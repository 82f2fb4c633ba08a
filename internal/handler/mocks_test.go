package handler

import (
	"bytes"
	"context"

	"telecom_assets/internal/model"
	"telecom_assets/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, name, password string) (*model.User, string, error) {
	args := m.Called(ctx, name, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, name, password string) error {
	return m.Called(ctx, name, password).Error(0)
}

type MockLineService struct {
	mock.Mock
}

func (m *MockLineService) List(ctx context.Context, filter model.LineFilter) (*model.LinePage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(*model.LinePage)
	return page, args.Error(1)
}

func (m *MockLineService) Get(ctx context.Context, id int64) (*model.Line, error) {
	args := m.Called(ctx, id)
	line, _ := args.Get(0).(*model.Line)
	return line, args.Error(1)
}

func (m *MockLineService) Create(ctx context.Context, form model.LineForm) (*model.Line, error) {
	args := m.Called(ctx, form)
	line, _ := args.Get(0).(*model.Line)
	return line, args.Error(1)
}

func (m *MockLineService) Update(ctx context.Context, id int64, form model.LineForm) (*model.Line, error) {
	args := m.Called(ctx, id, form)
	line, _ := args.Get(0).(*model.Line)
	return line, args.Error(1)
}

func (m *MockLineService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actorID, id int) error {
	return m.Called(ctx, actorID, id).Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.DashboardStats)
	return stats, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) CSV(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	buf, _ := args.Get(0).(*bytes.Buffer)
	return buf, args.Error(1)
}

func (m *MockExportService) Spreadsheet(ctx context.Context) (*bytes.Buffer, error) {
	args := m.Called(ctx)
	buf, _ := args.Get(0).(*bytes.Buffer)
	return buf, args.Error(1)
}

func (m *MockExportService) Filename(format string) string {
	return m.Called(format).String(0)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockHealthService) Report(ctx context.Context) (*service.HealthReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*service.HealthReport)
	return report, args.Error(1)
}
