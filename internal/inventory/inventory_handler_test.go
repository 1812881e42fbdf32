package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetVehicleInventory(vehicleID string) ([]models.InventoryItem, error) {
	args := m.Called(vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) SetQuantity(vehicleID, itemID string, quantity int) error {
	args := m.Called(vehicleID, itemID, quantity)
	return args.Error(0)
}

func technicianContext(vehicleID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "tech-1")
	c.Set("role", "technician")
	c.Set("name", "Carlos")
	c.Set("vehicleID", vehicleID)
	c.Request = httptest.NewRequest("GET", "/inventory", nil)
	return c, w
}

func TestGetOwnInventory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("scoped to the session vehicle", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetVehicleInventory", "vehicle-1").Return([]models.InventoryItem{
			{VehicleID: "vehicle-1", ItemID: "item-1", ItemName: "Cabo", SKU: "CB-25", Category: "Consumo", Quantity: 12},
		}, nil)
		handler := NewInventoryHandler(mockRepo)

		c, w := technicianContext("vehicle-1")
		handler.GetOwnInventory(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var inventory []models.InventoryItem
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &inventory))
		assert.Len(t, inventory, 1)
		assert.Equal(t, "vehicle-1", inventory[0].VehicleID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no vehicle assigned", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		handler := NewInventoryHandler(mockRepo)

		c, w := technicianContext("")
		handler.GetOwnInventory(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "GetVehicleInventory", mock.Anything)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		handler := NewInventoryHandler(mockRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/inventory", nil)

		handler.GetOwnInventory(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetVehicleInventory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("manager reads any vehicle by id", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetVehicleInventory", "vehicle-7").Return([]models.InventoryItem{}, nil)
		handler := NewInventoryHandler(mockRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/vehicles/vehicle-7/inventory", nil)
		c.Params = gin.Params{{Key: "id", Value: "vehicle-7"}}

		handler.GetVehicleInventory(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetVehicleInventory", "vehicle-7").Return(nil, errors.New("db error"))
		handler := NewInventoryHandler(mockRepo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/vehicles/vehicle-7/inventory", nil)
		c.Params = gin.Params{{Key: "id", Value: "vehicle-7"}}

		handler.GetVehicleInventory(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSetQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockInventoryRepository)
		expectedStatus int
	}{
		{
			name: "successful upsert",
			body: `{"item_id": "item-1", "quantity": 7}`,
			setupMock: func(m *MockInventoryRepository) {
				m.On("SetQuantity", "vehicle-1", "item-1", 7).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "zero quantity is a valid stock level",
			body: `{"item_id": "item-1", "quantity": 0}`,
			setupMock: func(m *MockInventoryRepository) {
				m.On("SetQuantity", "vehicle-1", "item-1", 0).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "negative quantity rejected",
			body:           `{"item_id": "item-1", "quantity": -1}`,
			setupMock:      func(m *MockInventoryRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing item rejected",
			body:           `{"quantity": 3}`,
			setupMock:      func(m *MockInventoryRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockInventoryRepository)
			tt.setupMock(mockRepo)
			handler := NewInventoryHandler(mockRepo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("PUT", "/vehicles/vehicle-1/inventory", bytes.NewBufferString(tt.body))
			c.Params = gin.Params{{Key: "id", Value: "vehicle-1"}}

			handler.SetQuantity(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
