package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/handler"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

type mockScheduleService struct {
	lastFilter repository.ScheduleFilter
	items      []repository.ScheduleListItem
	schedule   models.Schedule
	err        error
}

func (m *mockScheduleService) List(_ context.Context, _ policy.Identity, filter repository.ScheduleFilter) ([]repository.ScheduleListItem, error) {
	m.lastFilter = filter
	return m.items, m.err
}

func (m *mockScheduleService) Get(_ context.Context, _ policy.Identity, _ string) (repository.ScheduleDetail, error) {
	return repository.ScheduleDetail{}, m.err
}

func (m *mockScheduleService) Create(_ context.Context, _ policy.Identity, _ dto.ScheduleCreateRequest) (models.Schedule, error) {
	return m.schedule, m.err
}

func (m *mockScheduleService) Update(_ context.Context, _ policy.Identity, _ string, _ dto.ScheduleUpdateRequest) (models.Schedule, error) {
	return m.schedule, m.err
}

func (m *mockScheduleService) Reassign(_ context.Context, _ policy.Identity, _ string, _ dto.ScheduleReassignRequest) (models.Schedule, error) {
	return m.schedule, m.err
}

func (m *mockScheduleService) Delete(_ context.Context, _ policy.Identity, _ string) error {
	return m.err
}

type mockEnrollmentService struct {
	lastScheduleID   string
	lastLearnerID    string
	lastEnrollmentID string
	enrollment       models.Enrollment
	items            []repository.EnrollmentListItem
	err              error
}

func (m *mockEnrollmentService) Enroll(_ context.Context, _ policy.Identity, scheduleID string, req dto.EnrollRequest) (models.Enrollment, error) {
	m.lastScheduleID = scheduleID
	m.lastLearnerID = req.LearnerID
	if m.err != nil {
		return models.Enrollment{}, m.err
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentService) Unenroll(_ context.Context, _ policy.Identity, enrollmentID string) error {
	m.lastEnrollmentID = enrollmentID
	return m.err
}

func (m *mockEnrollmentService) ListBySchedule(_ context.Context, _ policy.Identity, scheduleID string) ([]repository.EnrollmentListItem, error) {
	m.lastScheduleID = scheduleID
	return m.items, m.err
}

type mockAttendanceService struct {
	lastDate string
	record   models.Attendance
	created  bool
	items    []repository.AttendanceListItem
	err      error
}

func (m *mockAttendanceService) List(_ context.Context, _ policy.Identity, _ string, date string) ([]repository.AttendanceListItem, error) {
	m.lastDate = date
	return m.items, m.err
}

func (m *mockAttendanceService) Mark(_ context.Context, _ policy.Identity, _ string, _ dto.AttendanceMarkRequest) (models.Attendance, bool, error) {
	if m.err != nil {
		return models.Attendance{}, false, m.err
	}
	return m.record, m.created, nil
}

type scheduleMocks struct {
	schedules   *mockScheduleService
	enrollments *mockEnrollmentService
	attendance  *mockAttendanceService
}

func newScheduleApp(identity policy.Identity) (*fiber.App, scheduleMocks) {
	mocks := scheduleMocks{
		schedules:   &mockScheduleService{},
		enrollments: &mockEnrollmentService{},
		attendance:  &mockAttendanceService{},
	}

	app := fiber.New()
	group := app.Group("/api/v1/schedules", func(c *fiber.Ctx) error {
		c.Locals("identity", identity)
		return c.Next()
	})
	handler.NewScheduleHandler(mocks.schedules, mocks.enrollments, mocks.attendance, zerolog.New(io.Discard)).Register(group)
	return app, mocks
}

func TestScheduleHandler_ListPassesFilter(t *testing.T) {
	app, mocks := newScheduleApp(policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules?status=upcoming&trainerId=trainer-1", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "upcoming", mocks.schedules.lastFilter.Status)
	require.Equal(t, "trainer-1", mocks.schedules.lastFilter.TrainerID)
}

func TestScheduleHandler_EnrollConflict(t *testing.T) {
	app, mocks := newScheduleApp(policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})
	mocks.enrollments.err = repository.ErrAlreadyEnrolled

	body, err := json.Marshal(dto.EnrollRequest{LearnerID: "learner-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/sched-1/enroll", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Learner is already enrolled in this schedule", response.Error)
}

func TestScheduleHandler_EnrollFull(t *testing.T) {
	app, mocks := newScheduleApp(policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})
	mocks.enrollments.err = repository.ErrScheduleFull

	body, err := json.Marshal(dto.EnrollRequest{LearnerID: "learner-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/sched-1/enroll", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScheduleHandler_UnenrollForwardsParams(t *testing.T) {
	app, mocks := newScheduleApp(policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedules/sched-1/enroll/enr-9", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "enr-9", mocks.enrollments.lastEnrollmentID)
}

func TestScheduleHandler_MarkAttendanceStatusCodes(t *testing.T) {
	payload, err := json.Marshal(dto.AttendanceMarkRequest{
		LearnerID: "learner-1",
		Date:      "2026-03-02",
		Status:    "present",
	})
	require.NoError(t, err)

	cases := []struct {
		name       string
		created    bool
		statusCode int
	}{
		{name: "first mark", created: true, statusCode: fiber.StatusCreated},
		{name: "overwrite", created: false, statusCode: fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, mocks := newScheduleApp(policy.Identity{UserID: "trainer-1", Role: policy.RoleTrainer})
			mocks.attendance.created = tc.created
			mocks.attendance.record = models.Attendance{ScheduleID: "sched-1", LearnerID: "learner-1"}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/sched-1/attendance", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestScheduleHandler_AttendanceListPassesDate(t *testing.T) {
	app, mocks := newScheduleApp(policy.Identity{UserID: "trainer-1", Role: policy.RoleTrainer})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/sched-1/attendance?date=2026-03-02", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "2026-03-02", mocks.attendance.lastDate)
}
