package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"profitfy/internal/model"
	"profitfy/internal/service"
)

// MockSessionService is a mock implementation of SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newSessionContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	user := &model.User{
		ID:      1,
		Name:    "Ana",
		Surname: "Souza",
		Email:   "a@x.com",
		Phone:   "+55 11 91234-0001",
	}

	t.Run("successful login", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Authenticate", mock.Anything, "a@x.com", "secret123").Return(user, "signed.jwt.token", nil)
		h := NewSessionHandler(svc)

		c, rec := newSessionContext(e, `{"email":"a@x.com","password":"secret123"}`)
		assert.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SessionResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "a@x.com", resp.Data.User.Email)
		assert.Equal(t, "Ana", resp.Data.User.Name)
		assert.Equal(t, "signed.jwt.token", resp.Data.Token)

		// The password hash must never appear in the response body.
		assert.NotContains(t, rec.Body.String(), "password")
		svc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Authenticate", mock.Anything, "a@x.com", "wrong").Return(nil, "", service.ErrInvalidCredentials)
		h := NewSessionHandler(svc)

		c, _ := newSessionContext(e, `{"email":"a@x.com","password":"wrong"}`)
		err := h.Create(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("dependency unavailable", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Authenticate", mock.Anything, "a@x.com", "secret123").Return(nil, "", service.ErrDependencyUnavailable)
		h := NewSessionHandler(svc)

		c, _ := newSessionContext(e, `{"email":"a@x.com","password":"secret123"}`)
		err := h.Create(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing fields rejected before the service is called", func(t *testing.T) {
		svc := new(MockSessionService)
		h := NewSessionHandler(svc)

		for _, body := range []string{
			`{}`,
			`{"email":"a@x.com"}`,
			`{"password":"secret123"}`,
			`{"email":"not-an-email","password":"secret123"}`,
		} {
			c, _ := newSessionContext(e, body)
			err := h.Create(c)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok, "body %s", body)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}
		svc.AssertNotCalled(t, "Authenticate")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockSessionService)
		h := NewSessionHandler(svc)

		c, _ := newSessionContext(e, `{not json`)
		err := h.Create(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		svc.AssertNotCalled(t, "Authenticate")
	})
}
