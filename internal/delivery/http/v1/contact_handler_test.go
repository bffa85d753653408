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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-contact-backend/config"
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/session"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/validation"
)

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, rec *domain.ContactFormRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, env domain.Envelope) error {
	return m.Called(ctx, env).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(repo domain.ContactRepository, mailer domain.Mailer) *gin.Engine {
	cfg := &config.Config{
		SessionSecret:          "test-secret",
		SessionCookieSecure:    true,
		RateLimitWindowSeconds: 60,
		SiteName:               "Acme Hub",
		SiteURL:                "https://acme.example",
		ContactEmailTo:         "ops@acme.example",
		ContactBCC:             "audit@acme.example",
	}

	sessions := session.NewMemoryStore()
	uc := usecase.NewContactUsecase(repo, mailer, sessions, validation.New(), email.NewIdentity(cfg), time.Minute)

	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		Sessions:  sessions,
		Config:    cfg,
	})
}

const validJSON = `{"fullName":"Jane Doe","email":"jane@example.com","phone":"+1555","enquiryType":"General","message":"Hello","botField":""}`

func postJSON(router *gin.Engine, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrongMethodAndUnknownRoute(t *testing.T) {
	router := newTestServer(new(MockContactRepo), new(MockMailer))

	for _, path := range []string{"/v1/contact", "/v1/nothing-here"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Page not found.", decodeBody(t, w)["message"], path)
	}
}

func TestHoneypotRejected(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	body := strings.Replace(validJSON, `"botField":""`, `"botField":"http://spam"`, 1)
	w := postJSON(router, body, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Spam detected.", decodeBody(t, w)["message"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidationErrors(t *testing.T) {
	router := newTestServer(new(MockContactRepo), new(MockMailer))

	t.Run("empty object", func(t *testing.T) {
		w := postJSON(router, `{}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := decodeBody(t, w)["errors"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, errs, 5)
	})

	t.Run("unparseable body is treated as empty", func(t *testing.T) {
		w := postJSON(router, `not json at all`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := decodeBody(t, w)["errors"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, errs, 5)
	})

	t.Run("bad email only", func(t *testing.T) {
		body := strings.Replace(validJSON, "jane@example.com", "not-an-email", 1)
		w := postJSON(router, body, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeBody(t, w)["errors"].(map[string]any)
		assert.Equal(t, "Please provide a valid email address.", errs["email"])
	})
}

func TestSubmissionEndToEnd(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	var stored *domain.ContactFormRecord
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactFormRecord")).
		Return(nil).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.ContactFormRecord)
		})

	var sent []domain.Envelope
	mailer.On("Send", mock.Anything, mock.AnythingOfType("domain.Envelope")).
		Return(nil).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(domain.Envelope))
		})

	w := postJSON(router, validJSON, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your message has been sent successfully.", decodeBody(t, w)["message"])

	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe", stored.FullName)
	assert.Equal(t, "General", stored.EnquiryType)

	require.Len(t, sent, 2)
	assert.Equal(t, "ops@acme.example", sent[0].To)
	assert.Equal(t, "jane@example.com", sent[1].To)
}

func TestFormEncodedSubmission(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	form := url.Values{
		"fullName":    {"Jane Doe"},
		"email":       {"jane@example.com"},
		"phone":       {"+1555"},
		"enquiryType": {"General"},
		"message":     {"Hello"},
		"botField":    {""},
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNumberOfCalls(t, "Create", 1)
	mailer.AssertNumberOfCalls(t, "Send", 2)
}

func TestSanitizationBeforeStorage(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	var stored *domain.ContactFormRecord
	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.ContactFormRecord)
		})
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	body := strings.Replace(validJSON, `"message":"Hello"`, `"message":"<b>Hi</b> \"there\""`, 1)
	w := postJSON(router, body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stored)
	assert.Equal(t, "Hi &quot;there&quot;", stored.Message)
}

func TestRateLimitWithinWindow(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	first := postJSON(router, validJSON, nil)
	require.Equal(t, http.StatusOK, first.Code)

	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	second := postJSON(router, validJSON, cookies)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "Please wait a bit before submitting again.", decodeBody(t, second)["message"])
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestStoreFailureSendsNoMail(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	w := postJSON(router, validJSON, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error saving your message. Please try again later.", decodeBody(t, w)["message"])
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestMailFailureKeepsThrottleOpen(t *testing.T) {
	repo := new(MockContactRepo)
	mailer := new(MockMailer)
	router := newTestServer(repo, mailer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("tls handshake failed"))

	first := postJSON(router, validJSON, nil)
	assert.Equal(t, http.StatusInternalServerError, first.Code)
	msg, _ := decodeBody(t, first)["message"].(string)
	assert.Contains(t, msg, "Mailer Error:")
	assert.Contains(t, msg, "tls handshake failed")

	// The failed attempt must not stamp the window: an immediate retry
	// from the same session still reaches the database.
	second := postJSON(router, validJSON, first.Result().Cookies())
	assert.NotEqual(t, http.StatusTooManyRequests, second.Code)
	repo.AssertNumberOfCalls(t, "Create", 2)
}
