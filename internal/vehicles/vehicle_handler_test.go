package vehicles

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	custom_error "github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/errors"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetVehicles() ([]models.Vehicle, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) PersistVehicle(name string) (*models.Vehicle, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) UpdateVehicle(id, name string) (*models.Vehicle, error) {
	args := m.Called(id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) RemoveVehicle(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type noopRecorder struct{}

func (noopRecorder) PersistLog(models.AuditLog, interface{}) error { return nil }

func newTestHandler(repo VehicleRepository) *VehicleHandler {
	return NewVehicleHandler(repo, auditlog.NewAuditLog(noopRecorder{}))
}

func TestCreateVehicle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockVehicleRepository)
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: `{"name": "Fiorino 03"}`,
			setupMock: func(m *MockVehicleRepository) {
				m.On("PersistVehicle", "Fiorino 03").Return(&models.Vehicle{ID: "vehicle-1", Name: "Fiorino 03"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name rejected",
			body:           `{}`,
			setupMock:      func(m *MockVehicleRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate name",
			body: `{"name": "Fiorino 03"}`,
			setupMock: func(m *MockVehicleRepository) {
				m.On("PersistVehicle", "Fiorino 03").Return(nil, custom_error.WrapDBError("duplicate key value", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVehicleRepository)
			tt.setupMock(mockRepo)
			handler := newTestHandler(mockRepo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/vehicles", bytes.NewBufferString(tt.body))

			handler.CreateVehicle(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetVehicles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockVehicleRepository)
	mockRepo.On("GetVehicles").Return([]models.Vehicle{
		{ID: "vehicle-1", Name: "Fiorino 03"},
		{ID: "vehicle-2", Name: "Kombi 01"},
	}, nil)
	handler := newTestHandler(mockRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/vehicles", nil)

	handler.GetVehicles(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var vehicles []models.Vehicle
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &vehicles))
	assert.Len(t, vehicles, 2)
}

func TestRemoveVehicle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("removes even with inventory attached", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("RemoveVehicle", "vehicle-1").Return(nil)
		handler := newTestHandler(mockRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("DELETE", "/vehicles/vehicle-1", nil)
		c.Params = gin.Params{{Key: "id", Value: "vehicle-1"}}

		handler.RemoveVehicle(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("RemoveVehicle", "vehicle-1").Return(errors.New("db error"))
		handler := newTestHandler(mockRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("DELETE", "/vehicles/vehicle-1", nil)
		c.Params = gin.Params{{Key: "id", Value: "vehicle-1"}}

		handler.RemoveVehicle(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
