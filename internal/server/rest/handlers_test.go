package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/logging"
	"github.com/dmitrijs2005/steptrack/internal/server/config"
	"github.com/dmitrijs2005/steptrack/internal/server/steps"
	"github.com/dmitrijs2005/steptrack/internal/server/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	userService := users.NewService(users.NewInMemoryRepository(), cfg)
	stepService := steps.NewService(steps.NewInMemoryRepository(nil))

	h := NewHandler(userService, stepService, logger)
	return NewRouter(h, []byte(cfg.SecretKey))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine) authResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var res authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRegister(t *testing.T) {
	r := newTestRouter(t)

	res := registerUser(t, r)

	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Another Alice",
		"email":    "alice@example.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)
	registered := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, registered.User.ID, res.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSteps_RequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/steps"},
		{http.MethodPost, "/api/steps"},
		{http.MethodGet, "/api/steps/daily"},
		{http.MethodGet, "/api/steps/weekly"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSteps_RejectGarbageToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/steps", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddSteps(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{"steps": 5000})
	require.Equal(t, http.StatusCreated, w.Code)

	var entry steps.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, res.User.ID, entry.UserID)
	assert.Equal(t, 5000, entry.Steps)
	assert.False(t, entry.Date.IsZero())
}

func TestAddSteps_RejectsNegative(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{"steps": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddSteps_MissingBody(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSteps(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	for _, n := range []int{1000, 2000} {
		w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{"steps": n})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/steps", res.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		StepData []steps.Entry `json:"stepData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.StepData, 2)
}

func TestDailySteps(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	for _, n := range []int{5000, 3000} {
		w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{"steps": n})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/steps/daily", res.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalSteps int `json:"totalSteps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 8000, body.TotalSteps)
}

func TestWeeklySteps(t *testing.T) {
	r := newTestRouter(t)
	res := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/steps", res.Token, gin.H{"steps": 4000})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/steps/weekly", res.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		WeeklyData []steps.DayTotal `json:"weeklyData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.WeeklyData, 7)

	// today is the last point and carries the appended total
	assert.Equal(t, 4000, body.WeeklyData[6].Steps)
	for i := 0; i < 6; i++ {
		assert.Equal(t, 0, body.WeeklyData[i].Steps)
		assert.True(t, body.WeeklyData[i].Date.Before(body.WeeklyData[i+1].Date))
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
