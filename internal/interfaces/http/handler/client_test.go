package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	partnerapp "github.com/agency/backend/internal/application/partner"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository implements partner.ClientRepository for testing.
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).([]partner.Client), args.Get(1).(int64), args.Error(2)
}

// MockOperatorRepository implements partner.OperatorRepository for testing.
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) Save(ctx context.Context, operator *partner.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) Update(ctx context.Context, operator *partner.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

func (m *MockOperatorRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Operator, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Operator), args.Error(1)
}

func (m *MockOperatorRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.OperatorFilter) ([]partner.Operator, int64, error) {
	args := m.Called(ctx, agencyID, filter)
	return args.Get(0).([]partner.Operator), args.Get(1).(int64), args.Error(2)
}

func setupClientHandler(clientRepo *MockClientRepository) *ClientHandler {
	service := partnerapp.NewService(clientRepo, new(MockOperatorRepository))
	return NewClientHandler(service)
}

func TestClientHandler_Create_Success(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()

	clientRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Client")).Return(nil)

	router := setupTestRouter(agencyID)
	router.POST("/clients", handler.Create)

	body, _ := json.Marshal(partnerapp.ClientRequest{
		Name:     "Ana Torres",
		Document: "30123456",
		Email:    "ana@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	clientRepo.AssertExpectations(t)
}

func TestClientHandler_Create_MissingName(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)

	router := setupTestRouter(uuid.New())
	router.POST("/clients", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	clientRepo.AssertNotCalled(t, "Save")
}

func TestClientHandler_Create_Unauthenticated(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/clients", handler.Create)

	body, _ := json.Marshal(partnerapp.ClientRequest{Name: "Ana Torres"})
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientHandler_GetByID(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()

	client, _ := partner.NewClient(agencyID, "Ana Torres")

	clientRepo.On("FindByID", mock.Anything, agencyID, client.ID).Return(client, nil)

	router := setupTestRouter(agencyID)
	router.GET("/clients/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/clients/"+client.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	clientRepo.AssertExpectations(t)
}

func TestClientHandler_GetByID_NotFound(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()
	clientID := uuid.New()

	clientRepo.On("FindByID", mock.Anything, agencyID, clientID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter(agencyID)
	router.GET("/clients/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/clients/"+clientID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientHandler_GetByID_InvalidID(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)

	router := setupTestRouter(uuid.New())
	router.GET("/clients/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/clients/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_List_DefaultsPagination(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()

	expected := partner.ClientFilter{Page: 1, PageSize: 20}
	clientRepo.On("FindAll", mock.Anything, agencyID, expected).Return([]partner.Client{}, int64(0), nil)

	router := setupTestRouter(agencyID)
	router.GET("/clients", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	clientRepo.AssertExpectations(t)
}

func TestClientHandler_List_PassesSearch(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()

	expected := partner.ClientFilter{Search: "torres", Page: 2, PageSize: 10}
	clientRepo.On("FindAll", mock.Anything, agencyID, expected).Return([]partner.Client{}, int64(0), nil)

	router := setupTestRouter(agencyID)
	router.GET("/clients", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/clients?search=torres&page=2&page_size=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	clientRepo.AssertExpectations(t)
}

func TestClientHandler_Delete(t *testing.T) {
	clientRepo := new(MockClientRepository)
	handler := setupClientHandler(clientRepo)
	agencyID := uuid.New()
	clientID := uuid.New()

	clientRepo.On("Delete", mock.Anything, agencyID, clientID).Return(nil)

	router := setupTestRouter(agencyID)
	router.DELETE("/clients/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/clients/"+clientID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	clientRepo.AssertExpectations(t)
}
