package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/driftwoodlabs/showfloor/internal/models"
	"github.com/driftwoodlabs/showfloor/internal/storage"
)

// Mock repositories

type mockProjectRepository struct {
	projects    []*models.Project
	listError   error
	createError error
	nextID      int64
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.projects, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if m.createError != nil {
		return m.createError
	}
	m.nextID++
	project.ID = m.nextID
	project.CreatedAt = time.Now()
	m.projects = append(m.projects, project)
	return nil
}

func (m *mockProjectRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.projects)), nil
}

type mockUserRepository struct {
	users        []*models.User
	getByIDError error
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	return m.users, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type incrementCall struct {
	name  string
	delta int64
}

type mockMetricRepository struct {
	incrementError error
	increments     []incrementCall
}

func (m *mockMetricRepository) List(ctx context.Context) ([]*models.Metric, error) {
	return nil, nil
}

func (m *mockMetricRepository) Upsert(ctx context.Context, name string, value int64) error {
	return nil
}

func (m *mockMetricRepository) Increment(ctx context.Context, name string, delta int64) error {
	if m.incrementError != nil {
		return m.incrementError
	}
	m.increments = append(m.increments, incrementCall{name: name, delta: delta})
	return nil
}

type mockStore struct {
	projectRepo *mockProjectRepository
	userRepo    *mockUserRepository
	metricRepo  *mockMetricRepository
}

func (m *mockStore) Open() error                         { return nil }
func (m *mockStore) Close() error                        { return nil }
func (m *mockStore) Ping(ctx context.Context) error      { return nil }
func (m *mockStore) Users() storage.UserRepository       { return m.userRepo }
func (m *mockStore) Projects() storage.ProjectRepository { return m.projectRepo }
func (m *mockStore) Metrics() storage.MetricRepository   { return m.metricRepo }

func newMockStore() *mockStore {
	return &mockStore{
		projectRepo: &mockProjectRepository{},
		userRepo:    &mockUserRepository{},
		metricRepo:  &mockMetricRepository{},
	}
}

func seedOwner(store *mockStore) *models.User {
	owner := &models.User{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Role: "admin", CreatedAt: time.Now()}
	store.userRepo.users = append(store.userRepo.users, owner)
	return owner
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp.Error
}

func TestList_Success(t *testing.T) {
	ownerID := int64(1)
	store := newMockStore()
	store.projectRepo.projects = []*models.Project{
		{ID: 2, Title: "Mobile App", Status: models.StatusInProgress, UserID: &ownerID, OwnerName: "Alice Johnson", CreatedAt: time.Now()},
		{ID: 1, Title: "Website Redesign", Status: models.StatusCompleted, UserID: &ownerID, OwnerName: "Alice Johnson", CreatedAt: time.Now()},
	}

	handler := NewHandler(store)
	req := httptest.NewRequest("GET", "/api/projects", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data []*ProjectResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("projects = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].Title != "Mobile App" || resp.Data[0].Status != "in-progress" {
		t.Errorf("first project = %+v", resp.Data[0])
	}
	if resp.Data[1].OwnerName != "Alice Johnson" {
		t.Errorf("owner name = %q, want Alice Johnson", resp.Data[1].OwnerName)
	}
}

func TestList_StorageError(t *testing.T) {
	store := newMockStore()
	store.projectRepo.listError = errors.New("connection refused")

	handler := NewHandler(store)
	req := httptest.NewRequest("GET", "/api/projects", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if e := decodeError(t, rec); e.Code != "INTERNAL_ERROR" {
		t.Errorf("error code = %q, want INTERNAL_ERROR", e.Code)
	}
}

func TestCreate_Success(t *testing.T) {
	store := newMockStore()
	seedOwner(store)

	handler := NewHandler(store)
	body := `{"title": "Brand Refresh", "description": "New logo", "user_id": 1}`
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Data ProjectResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID == 0 {
		t.Error("response missing project id")
	}
	if resp.Data.Status != "planning" {
		t.Errorf("status = %q, want planning", resp.Data.Status)
	}
	if resp.Data.OwnerName != "Alice Johnson" {
		t.Errorf("owner name = %q, want Alice Johnson", resp.Data.OwnerName)
	}

	if len(store.projectRepo.projects) != 1 {
		t.Fatalf("stored projects = %d, want 1", len(store.projectRepo.projects))
	}
	stored := store.projectRepo.projects[0]
	if stored.UserID == nil || *stored.UserID != 1 {
		t.Errorf("stored owner = %v, want 1", stored.UserID)
	}

	if len(store.metricRepo.increments) != 1 {
		t.Fatalf("metric increments = %d, want 1", len(store.metricRepo.increments))
	}
	inc := store.metricRepo.increments[0]
	if inc.name != models.MetricTotalProjects || inc.delta != 1 {
		t.Errorf("increment = %+v, want total_projects by 1", inc)
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	store := newMockStore()
	seedOwner(store)

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"user_id": 1}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	e := decodeError(t, rec)
	if e.Code != "VALIDATION_FAILED" {
		t.Errorf("error code = %q, want VALIDATION_FAILED", e.Code)
	}
	if e.Message != "title is required" {
		t.Errorf("error message = %q", e.Message)
	}
	if len(store.projectRepo.projects) != 0 {
		t.Error("project stored despite validation failure")
	}
	if len(store.metricRepo.increments) != 0 {
		t.Error("counter moved despite validation failure")
	}
}

func TestCreate_BlankTitle(t *testing.T) {
	store := newMockStore()
	seedOwner(store)

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title": "   ", "user_id": 1}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_MissingUserID(t *testing.T) {
	store := newMockStore()
	seedOwner(store)

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title": "Brand Refresh"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if e := decodeError(t, rec); e.Message != "user_id is required" {
		t.Errorf("error message = %q", e.Message)
	}
	if len(store.projectRepo.projects) != 0 {
		t.Error("project stored despite missing user_id")
	}
}

func TestCreate_UnknownUser(t *testing.T) {
	store := newMockStore()
	seedOwner(store)

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title": "Brand Refresh", "user_id": 99}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if e := decodeError(t, rec); e.Code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", e.Code)
	}
	if len(store.projectRepo.projects) != 0 {
		t.Error("project stored for unknown user")
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	store := newMockStore()

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if e := decodeError(t, rec); e.Code != "BAD_REQUEST" {
		t.Errorf("error code = %q, want BAD_REQUEST", e.Code)
	}
}

func TestCreate_StorageError(t *testing.T) {
	store := newMockStore()
	seedOwner(store)
	store.projectRepo.createError = errors.New("connection refused")

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title": "Brand Refresh", "user_id": 1}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if len(store.metricRepo.increments) != 0 {
		t.Error("counter moved despite insert failure")
	}
}

func TestCreate_CounterFailureKeepsRow(t *testing.T) {
	store := newMockStore()
	seedOwner(store)
	store.metricRepo.incrementError = errors.New("connection refused")

	handler := NewHandler(store)
	req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title": "Brand Refresh", "user_id": 1}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	// The insert is not compensated; the row stays.
	if len(store.projectRepo.projects) != 1 {
		t.Errorf("stored projects = %d, want 1", len(store.projectRepo.projects))
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Brand Refresh"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := ValidateTitle(""); err == nil {
		t.Error("empty title accepted")
	}
	if err := ValidateTitle(strings.Repeat("x", 201)); err == nil {
		t.Error("oversized title accepted")
	}
}
