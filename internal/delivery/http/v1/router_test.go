package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sparknest-backend/config"
	v1 "sparknest-backend/internal/delivery/http/v1"
	"sparknest-backend/internal/domain"
	"sparknest-backend/internal/usecase"
	"sparknest-backend/pkg/email"
	"sparknest-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg *email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// failingUsecase simulates an internal fault past validation
type failingUsecase struct{}

func (failingUsecase) SubmitContact(context.Context, map[string]any) (*domain.SubmissionResult, error) {
	return nil, errors.New("renderer exploded")
}

func (failingUsecase) SubmitProject(context.Context, map[string]any) (*domain.SubmissionResult, error) {
	return nil, errors.New("renderer exploded")
}

type envelope struct {
	Success   bool                    `json:"success"`
	Message   string                  `json:"message"`
	Errors    []validation.FieldError `json:"errors"`
	RequestID string                  `json:"request_id"`
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:      gin.TestMode,
		MaxBodyBytes: 4096,
		PingMessage:  "pong",
	}
}

func newRouter(t *testing.T, transport email.Transport) *gin.Engine {
	t.Helper()
	renderer, err := email.NewRenderer("SparkNest Studio")
	require.NoError(t, err)

	dispatcher := usecase.NewDispatcher(usecase.DispatcherConfig{
		Renderer:      renderer,
		Transport:     transport,
		To:            "hello@sparknest.studio",
		SubjectPrefix: "[SparkNest]",
	})
	uc := usecase.NewSubmissionUsecase(validation.NewFormValidator(), dispatcher, nil)
	return v1.NewRouter(v1.RouterDeps{
		SubmissionUC: uc,
		HealthUC:     usecase.NewHealthUsecase("smtp", transport != nil),
		Config:       testConfig(),
	})
}

func do(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestSubmitContactSuccess(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	r := newRouter(t, transport)

	w := do(r, http.MethodPost, "/api/contact", "application/json",
		`{"name":"Jane","email":"jane@x.com","subject":"Hi","message":"Hello","formType":"contact"}`)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, usecase.ContactSuccessMessage, env.Message)
	assert.Empty(t, env.Errors)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))
	transport.AssertExpectations(t)
}

func TestSubmitContactFailingTransportStillSucceeds(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).
		Return(&email.TransportError{Provider: "smtp", Err: errors.New("dial tcp: refused")})
	r := newRouter(t, transport)

	w := do(r, http.MethodPost, "/api/contact", "application/json",
		`{"name":"Jane","email":"jane@x.com","subject":"Hi","message":"Hello","formType":"contact"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestSubmitContactMissingEmail(t *testing.T) {
	transport := new(MockTransport)
	r := newRouter(t, transport)

	w := do(r, http.MethodPost, "/api/contact", "application/json",
		`{"name":"Jane","subject":"Hi","message":"Hello","formType":"contact"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid form data", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "email", env.Errors[0].Field)
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitProjectInvalidType(t *testing.T) {
	transport := new(MockTransport)
	r := newRouter(t, transport)

	w := do(r, http.MethodPost, "/api/project", "application/json",
		`{"name":"Jane","email":"jane@x.com","projectType":"blockchain","budget":"10k","timeline":"soon","description":"Chain"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "projectType", env.Errors[0].Field)
	assert.Contains(t, env.Errors[0].Reason, "received 'blockchain'")
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitNonObjectBody(t *testing.T) {
	r := newRouter(t, nil)

	for _, body := range []string{`["Jane"]`, `"Jane"`, `{"name":`, ``} {
		w := do(r, http.MethodPost, "/api/contact", "application/json", body)

		require.Equal(t, http.StatusBadRequest, w.Code, body)
		env := decode(t, w)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, "", env.Errors[0].Field)
	}
}

func TestSubmitProjectURLEncoded(t *testing.T) {
	var sent *email.Message
	transport := new(MockTransport)
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*email.Message) }).
		Return(nil).Once()
	r := newRouter(t, transport)

	form := url.Values{
		"name":        {"Jane"},
		"email":       {"jane@x.com"},
		"projectType": {"mobile"},
		"budget":      {"5k-10k"},
		"timeline":    {"3 months"},
		"description": {"Delivery app"},
		"features":    {"Maps", "Payments"},
	}
	w := do(r, http.MethodPost, "/api/project", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, usecase.ProjectSuccessMessage, decode(t, w).Message)
	require.NotNil(t, sent)
	assert.Equal(t, "[SparkNest] New Project: Mobile Application", sent.Subject)
	assert.Less(t, strings.Index(sent.Text, "- Maps"), strings.Index(sent.Text, "- Payments"))
}

func TestSubmitInternalFault(t *testing.T) {
	r := v1.NewRouter(v1.RouterDeps{SubmissionUC: failingUsecase{}, Config: testConfig()})

	w := do(r, http.MethodPost, "/api/contact", "application/json", `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to send message. Please try again.", env.Message)
	assert.NotContains(t, w.Body.String(), "renderer exploded")

	w = do(r, http.MethodPost, "/api/project", "application/json", `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to submit project request. Please try again.", decode(t, w).Message)
}

func TestSubmitBodyTooLarge(t *testing.T) {
	r := newRouter(t, nil)

	body := `{"message":"` + strings.Repeat("a", 8192) + `"}`
	w := do(r, http.MethodPost, "/api/contact", "application/json", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestInformationalEndpoints(t *testing.T) {
	r := newRouter(t, nil)

	w := do(r, http.MethodGet, "/api/ping", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/demo", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello from the SparkNest Studio API"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
	assert.Contains(t, w.Body.String(), `"delivery":"log"`)
}

func TestRequestIDReused(t *testing.T) {
	r := newRouter(t, nil)
	const id = "0b9f0f7e-6f2b-4b8a-9c55-4f8e8f2b9a10"

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
	assert.Equal(t, id, decode(t, w).RequestID)
}

func TestCORS(t *testing.T) {
	r := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://sparknest.studio")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"https://sparknest.studio"}
	restricted := v1.NewRouter(v1.RouterDeps{SubmissionUC: failingUsecase{}, Config: cfg})

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	restricted.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
