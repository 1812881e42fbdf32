package requests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/auditlog"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/metadata"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) GetRequests() ([]models.Request, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockRequestRepository) InsertRequestRecord(tx *goqu.TxDatabase, userID string, notes *string) (string, error) {
	args := m.Called(tx, userID, notes)
	return args.String(0), args.Error(1)
}

func (m *MockRequestRepository) InsertRequestItems(tx *goqu.TxDatabase, requestID string, items []RequestItemRequest) error {
	args := m.Called(tx, requestID, items)
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateStatus(id string, status metadata.Status) error {
	args := m.Called(id, status)
	return args.Error(0)
}

type noopRecorder struct{}

func (noopRecorder) PersistLog(models.AuditLog, interface{}) error { return nil }

func newTestHandler(repo RequestRepository) *RequestHandler {
	return NewHandler(repo, nil, auditlog.NewAuditLog(noopRecorder{}))
}

func TestCreateRequestValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "empty item list rejected",
			body: `{"request_items": []}`,
		},
		{
			name: "zero quantity rejected",
			body: `{"request_items": [{"item_id": "item-1", "requested_quantity": 0}]}`,
		},
		{
			name: "negative quantity rejected",
			body: `{"request_items": [{"item_id": "item-1", "requested_quantity": -2}]}`,
		},
		{
			name: "item without id rejected",
			body: `{"request_items": [{"requested_quantity": 3}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRequestRepository)
			handler := newTestHandler(mockRepo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("userID", "tech-1")
			c.Set("role", "technician")
			c.Request = httptest.NewRequest("POST", "/requests", bytes.NewBufferString(tt.body))

			handler.CreateRequest(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockRepo.AssertNotCalled(t, "InsertRequestRecord", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockRequestRepository)
	mockRepo.On("GetRequests").Return([]models.Request{
		{ID: "req-2", Status: "pending"},
		{ID: "req-1", Status: "rejected"},
	}, nil)
	handler := newTestHandler(mockRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/requests", nil)

	handler.GetRequests(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var requests []models.Request
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &requests))
	assert.Len(t, requests, 2)
}

func TestUpdateRequestStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockRequestRepository)
		expectedStatus int
	}{
		{
			name: "approve",
			body: `{"status": "approved"}`,
			setupMock: func(m *MockRequestRepository) {
				m.On("UpdateStatus", "req-1", metadata.StatusApproved).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "pending is not a decision",
			body:           `{"status": "pending"}`,
			setupMock:      func(m *MockRequestRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown request id",
			body: `{"status": "rejected"}`,
			setupMock: func(m *MockRequestRepository) {
				m.On("UpdateStatus", "req-1", metadata.StatusRejected).Return(errors.New("request not found"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRequestRepository)
			tt.setupMock(mockRepo)
			handler := newTestHandler(mockRepo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("PATCH", "/requests/req-1/status", bytes.NewBufferString(tt.body))
			c.Params = gin.Params{{Key: "id", Value: "req-1"}}

			handler.UpdateRequestStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
