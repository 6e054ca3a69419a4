package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/smirnov-dev/presence_sync/internal/config"
	"github.com/smirnov-dev/presence_sync/internal/eligibility"
	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/service"
	"github.com/smirnov-dev/presence_sync/internal/service/mocks"
)

type testMocks struct {
	events    *mocks.MockEventService
	locations *mocks.MockLocationService
	schedules *mocks.MockScheduleService
}

// newTestHandler создает Handler с мокированными сервисами
func newTestHandler(t *testing.T) (testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		events:    mocks.NewMockEventService(ctrl),
		locations: mocks.NewMockLocationService(ctrl),
		schedules: mocks.NewMockScheduleService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(m.events, m.locations, m.schedules, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateEvent_Success(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateEventRequest{
		Name:                "Планёрка",
		StartDate:           "20/11/2025",
		StartTime:           "09:00",
		Latitude:            55.7558,
		Longitude:           37.6173,
		RadiusMeters:        100,
		AssignedDepartments: []string{"Sales"},
	}
	expected := models.Event{
		ID:           3,
		Name:         reqBody.Name,
		StartDate:    reqBody.StartDate,
		StartTime:    reqBody.StartTime,
		Latitude:     reqBody.Latitude,
		Longitude:    reqBody.Longitude,
		RadiusMeters: reqBody.RadiusMeters,
		Status:       models.EventStatusUpcoming,
		Assignment:   models.Assignment{Departments: []string{"Sales"}},
	}

	m.events.EXPECT().
		CreateEvent(gomock.Any(), CreateEventDTOToModel(reqBody)).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, reqBody.Name, resp.Name)
	assert.Equal(t, models.EventStatusUpcoming, resp.Status)
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBufferString(`{"name": "test"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEvent_ValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateEventRequest{ // Отсутствует Name
		StartDate:    "20/11/2025",
		StartTime:    "09:00",
		Latitude:     55.7558,
		Longitude:    37.6173,
		RadiusMeters: 100,
	}

	m.events.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Name' failed on the 'required' tag")
}

func TestCreateEvent_DuplicateName(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateEventRequest{
		Name:                "Планёрка",
		StartDate:           "20/11/2025",
		StartTime:           "09:00",
		Latitude:            55.7558,
		Longitude:           37.6173,
		RadiusMeters:        100,
		AssignedDepartments: []string{"Sales"},
	}

	m.events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(models.Event{}, fmt.Errorf("service: event: %w", service.ErrDuplicateName)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateEvent_EmptyAssignment(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateEventRequest{
		Name:         "Планёрка",
		StartDate:    "20/11/2025",
		StartTime:    "09:00",
		Latitude:     55.7558,
		Longitude:    37.6173,
		RadiusMeters: 100,
	}

	m.events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(models.Event{}, fmt.Errorf("service: event: %w", service.ErrEmptyAssignment)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/events", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEvent_Success(t *testing.T) {
	m, router := newTestHandler(t)
	expected := models.Event{ID: 7, Name: "Событие", Status: models.EventStatusOngoing}

	m.events.EXPECT().GetEvent(gomock.Any(), int64(7)).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, expected.Name, resp.Name)
}

func TestGetEvent_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().GetEvent(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid event ID")
}

func TestGetEvent_NotFound(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().
		GetEvent(gomock.Any(), int64(99)).
		Return(models.Event{}, fmt.Errorf("service: event 99: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestListEvents_Success(t *testing.T) {
	m, router := newTestHandler(t)
	expected := []models.Event{
		{ID: 1, Name: "Первое"},
		{ID: 2, Name: "Второе"},
	}

	m.events.EXPECT().ListEvents(gomock.Any()).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/events", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, expected[0].Name, resp[0].Name)
}

func TestVisibleEvents_PassesViewer(t *testing.T) {
	m, router := newTestHandler(t)
	viewer := models.Viewer{ID: 5, Role: models.RoleEmployee, Department: "sales"}

	m.events.EXPECT().
		VisibleEvents(gomock.Any(), viewer).
		Return([]models.Event{{ID: 1, Name: "Kickoff"}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/visible?user_id=5&role=employee&department=sales", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Kickoff", resp[0].Name)
}

func TestVisibleEvents_DefaultsRoleToEmployee(t *testing.T) {
	m, router := newTestHandler(t)

	// Не указанная роль трактуется как рядовой сотрудник
	m.events.EXPECT().
		VisibleEvents(gomock.Any(), models.Viewer{ID: 5, Role: models.RoleEmployee}).
		Return(nil, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/visible?user_id=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVisibleEvents_UnknownRole(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().VisibleEvents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/visible?role=hacker", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventJoinWindow_Success(t *testing.T) {
	m, router := newTestHandler(t)
	at := time.Date(2025, time.November, 20, 9, 15, 0, 0, time.UTC)

	m.events.EXPECT().
		EventJoinStatus(gomock.Any(), int64(4), gomock.Any()).
		Return(service.JoinStatus{
			CanJoin:   true,
			TimeLeft:  eligibility.Remaining{Minutes: 15},
			CheckedAt: at,
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/events/4/join-window?at=2025-11-20T09:15:00Z", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp JoinStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.CanJoin)
	assert.Equal(t, 15, resp.MinutesRemaining)
}

func TestEventJoinWindow_BadInstant(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().EventJoinStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/events/4/join-window?at=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEvent_Success(t *testing.T) {
	m, router := newTestHandler(t)
	newName := "Переименовано"
	reqBody := UpdateEventRequest{Name: &newName}

	m.events.EXPECT().
		UpdateEvent(gomock.Any(), int64(2), UpdateEventDTOToPatch(reqBody)).
		Return(models.Event{ID: 2, Name: newName}, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/events/2", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	newName := "Переименовано"
	reqBody := UpdateEventRequest{Name: &newName}

	m.events.EXPECT().
		UpdateEvent(gomock.Any(), int64(99), gomock.Any()).
		Return(models.Event{}, fmt.Errorf("service: event 99: %w", service.ErrNotFound)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/events/99", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEvent_Success(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().DeleteEvent(gomock.Any(), int64(3)).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/events/3", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteEvents_Bulk(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := DeleteManyRequest{IDs: []int64{1, 2, 77}}

	m.events.EXPECT().
		DeleteEvents(gomock.Any(), reqBody.IDs).
		Return([]int64{1, 2}, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "DELETE", "/api/v1/events", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp DeleteManyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, resp.DeletedIDs)
}

func TestDeleteEvents_EmptyIDs(t *testing.T) {
	m, router := newTestHandler(t)

	m.events.EXPECT().DeleteEvents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/events", bytes.NewBufferString(`{"ids": []}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLocation_GeofenceOverlap(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateLocationRequest{
		Name:         "Склад",
		Latitude:     55.7558,
		Longitude:    37.6173,
		RadiusMeters: 100,
	}

	m.locations.EXPECT().
		CreateLocation(gomock.Any(), gomock.Any()).
		Return(models.Location{}, fmt.Errorf("service: location: %w", service.ErrGeofenceOverlap)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/locations", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateLocation_Success(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateLocationRequest{
		Name:         "Склад",
		Latitude:     55.7558,
		Longitude:    37.6173,
		RadiusMeters: 100,
	}
	expected := models.Location{ID: 2, Name: "Склад", Status: models.LocationStatusActive}

	m.locations.EXPECT().
		CreateLocation(gomock.Any(), CreateLocationDTOToModel(reqBody)).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/locations", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp LocationResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, models.LocationStatusActive, resp.Status)
}

func TestUpdateLocation_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)
	lat := 55.7558
	reqBody := UpdateLocationRequest{Latitude: &lat}
	serviceError := errors.New("store exploded")

	m.locations.EXPECT().
		UpdateLocation(gomock.Any(), int64(1), gomock.Any()).
		Return(models.Location{}, serviceError).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "PATCH", "/api/v1/locations/1", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestCreateSchedule_Success(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := CreateScheduleRequest{
		Team:                "Дежурная смена",
		AssignedDepartments: []string{"Reception"},
	}
	expected := models.Schedule{ID: 1, Team: "Дежурная смена"}

	m.schedules.EXPECT().
		CreateSchedule(gomock.Any(), CreateScheduleDTOToModel(reqBody)).
		Return(expected, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/schedules", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ScheduleResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "Дежурная смена", resp.Team)
}

func TestVisibleSchedules_PassesViewer(t *testing.T) {
	m, router := newTestHandler(t)
	viewer := models.Viewer{Role: models.RoleBranchAdmin, Province: "77"}

	m.schedules.EXPECT().
		VisibleSchedules(gomock.Any(), viewer).
		Return([]models.Schedule{{ID: 1, Team: "Смена"}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/schedules/visible?role=branch_admin&province=77", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ScheduleResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Смена", resp[0].Team)
}

func TestDeleteSchedules_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := DeleteManyRequest{IDs: []int64{8, 9}}

	m.schedules.EXPECT().
		DeleteSchedules(gomock.Any(), reqBody.IDs).
		Return(nil, fmt.Errorf("service: no schedules found: %w", service.ErrNotFound)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "DELETE", "/api/v1/schedules", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck_Success(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
