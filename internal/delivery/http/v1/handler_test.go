package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"candidate-tracker-backend/config"
	v1 "candidate-tracker-backend/internal/delivery/http/v1"
	"candidate-tracker-backend/internal/domain"
	"candidate-tracker-backend/pkg/apperror"
	"candidate-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthUC) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUC) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) Create(ctx context.Context, in domain.CandidateInput) (*domain.Candidate, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Get(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Update(ctx context.Context, id int64, in domain.CandidateInput) (*domain.Candidate, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Patch(ctx context.Context, id int64, in domain.CandidatePatch) (*domain.Candidate, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Candidate, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Delete(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockCandidateUC) List(ctx context.Context, f domain.CandidateFilter) (*domain.CandidatePage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidatePage), args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(authUC domain.AuthUsecase, candidateUC domain.CandidateUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()
	return v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		CandidateUC: candidateUC,
		Config: &config.Config{
			FrontendURL:             "http://localhost:4200",
			RateLimitWindowSeconds:  60,
			RateLimitLoginThreshold: 1000,
			PageSizeDefault:         10,
		},
	})
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recruiter() *domain.User {
	return &domain.User{ID: "user-1", Username: "recruiter", Email: "recruiter@example.com", FirstName: "Rita", LastName: "Recruiter", IsActive: true}
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("returns token and user on success", func(t *testing.T) {
		authUC := new(MockAuthUC)
		authUC.On("Login", mock.Anything, "recruiter", "secret").Return("tok-123", recruiter(), nil)
		r := newTestRouter(authUC, new(MockCandidateUC))

		w := doJSON(r, http.MethodPost, "/v1/login", "", gin.H{"username": "recruiter", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		var data v1.LoginResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "tok-123", data.Token)
		assert.Equal(t, "recruiter", data.User.Username)
		// Hash must never serialize.
		assert.NotContains(t, string(resp.Data), "password")
	})

	t.Run("missing fields are reported together", func(t *testing.T) {
		r := newTestRouter(new(MockAuthUC), new(MockCandidateUC))

		w := doJSON(r, http.MethodPost, "/v1/login", "", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, string(resp.Error), "username")
		assert.Contains(t, string(resp.Error), "password")
	})

	t.Run("bad credentials yield 401", func(t *testing.T) {
		authUC := new(MockAuthUC)
		authUC.On("Login", mock.Anything, "recruiter", "nope").Return("", nil, apperror.Unauthorized("Invalid credentials"))
		r := newTestRouter(authUC, new(MockCandidateUC))

		w := doJSON(r, http.MethodPost, "/v1/login", "", gin.H{"username": "recruiter", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCandidateRoutesRequireAuth(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "bad").Return(nil, apperror.Unauthorized("Invalid token"))
	r := newTestRouter(authUC, new(MockCandidateUC))

	t.Run("no header", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/v1/candidates", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/v1/candidates", "bad", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCandidateCreateEndpoint(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "tok").Return(recruiter(), nil)

	t.Run("created with normalized email", func(t *testing.T) {
		candidateUC := new(MockCandidateUC)
		candidateUC.On("Create", mock.Anything, domain.CandidateInput{
			Name: "Jo", Email: "Jo@X.com", Phone: "1234567890", PositionApplied: "Dev",
		}).Return(&domain.Candidate{
			ID: 1, Name: "Jo", Email: "jo@x.com", Phone: "1234567890",
			PositionApplied: "Dev", Status: domain.StatusApplied,
		}, nil)
		r := newTestRouter(authUC, candidateUC)

		w := doJSON(r, http.MethodPost, "/v1/candidates", "tok", gin.H{
			"name": "Jo", "email": "Jo@X.com", "phone": "1234567890", "position_applied": "Dev",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, string(resp.Data), `"jo@x.com"`)
	})

	t.Run("validation failure carries field details", func(t *testing.T) {
		candidateUC := new(MockCandidateUC)
		candidateUC.On("Create", mock.Anything, mock.Anything).Return(nil, apperror.Validation(map[string][]string{
			"phone": {"Phone number must be exactly 10 digits."},
		}))
		r := newTestRouter(authUC, candidateUC)

		w := doJSON(r, http.MethodPost, "/v1/candidates", "tok", gin.H{
			"name": "Jo", "email": "jo@x.com", "phone": "12345", "position_applied": "Dev",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Validation failed", resp.Message)
		assert.Contains(t, string(resp.Error), "exactly 10 digits")
	})
}

func TestCandidateDeleteEndpoint(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "tok").Return(recruiter(), nil)

	candidateUC := new(MockCandidateUC)
	candidateUC.On("Delete", mock.Anything, int64(5)).Return("Amit Sharma", nil).Once()
	candidateUC.On("Delete", mock.Anything, int64(5)).Return("", apperror.NotFound("Candidate not found")).Once()
	r := newTestRouter(authUC, candidateUC)

	w := doJSON(r, http.MethodDelete, "/v1/candidates/5", "tok", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Amit Sharma")

	w = doJSON(r, http.MethodDelete, "/v1/candidates/5", "tok", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCandidateStatusEndpoint(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "tok").Return(recruiter(), nil)

	candidateUC := new(MockCandidateUC)
	candidateUC.On("UpdateStatus", mock.Anything, int64(2), "Interview").Return(&domain.Candidate{
		ID: 2, Name: "Amit Sharma", Status: domain.StatusInterview,
	}, nil)
	r := newTestRouter(authUC, candidateUC)

	w := doJSON(r, http.MethodPatch, "/v1/candidates/2/status", "tok", gin.H{"status": "Interview"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Status updated to Interview", resp.Message)
}

func TestCandidateListEndpoint(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "tok").Return(recruiter(), nil)

	candidateUC := new(MockCandidateUC)
	candidateUC.On("List", mock.Anything, domain.CandidateFilter{
		Status: "Interview", Search: "amit", OrderBy: "name", Descending: true, Page: 2, PageSize: 5,
	}).Return(&domain.CandidatePage{Count: 11, Results: []domain.CandidateListItem{}}, nil)
	r := newTestRouter(authUC, candidateUC)

	w := doJSON(r, http.MethodGet, "/v1/candidates?page=2&page_size=5&search=amit&status=Interview&ordering=-name", "tok", nil)
	require.Equal(t, http.StatusOK, w.Code)
	candidateUC.AssertExpectations(t)
}

func TestInvalidCandidateID(t *testing.T) {
	authUC := new(MockAuthUC)
	authUC.On("Authenticate", mock.Anything, "tok").Return(recruiter(), nil)
	r := newTestRouter(authUC, new(MockCandidateUC))

	w := doJSON(r, http.MethodGet, "/v1/candidates/abc", "tok", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
