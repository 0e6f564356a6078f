package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/client/models"
	"github.com/dmitrijs2005/steptrack/internal/common"
)

// HTTPClient implements Client over the backend's HTTP/JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a Client talking to the API at baseURL. A trailing
// slash on baseURL is tolerated.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusErr maps an error response to the client error taxonomy. The same
// 401 means "bad credentials" on auth endpoints and "session expired" on
// step endpoints, so the caller says which surface it is on.
func statusErr(status int, body []byte, authEndpoint bool) error {
	var er errorResponse
	_ = json.Unmarshal(body, &er)

	switch status {
	case http.StatusBadRequest:
		if er.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrInvalidInput, er.Error)
		}
		return common.ErrInvalidInput
	case http.StatusUnauthorized:
		if authEndpoint {
			return common.ErrInvalidCredentials
		}
		return common.ErrUnauthorized
	case http.StatusConflict:
		return common.ErrDuplicateEmail
	default:
		if er.Error != "" {
			return fmt.Errorf("server error (status %d): %s", status, er.Error)
		}
		return fmt.Errorf("server error (status %d)", status)
	}
}

// doJSON performs one request and decodes a 2xx response body into out.
// Transport-level failures are reported as ErrUnavailable.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body any, authEndpoint bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("request marshal error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request build error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("response read error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusErr(resp.StatusCode, data, authEndpoint)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("response unmarshal error: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, true, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, true, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetSteps(ctx context.Context, token string) ([]models.StepEntry, error) {
	var res struct {
		StepData []models.StepEntry `json:"stepData"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/steps", token, nil, false, &res); err != nil {
		return nil, err
	}
	return res.StepData, nil
}

func (c *HTTPClient) SaveSteps(ctx context.Context, token string, steps int) (*models.StepEntry, error) {
	var entry models.StepEntry
	err := c.doJSON(ctx, http.MethodPost, "/api/steps", token, map[string]int{
		"steps": steps,
	}, false, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) GetDailySteps(ctx context.Context, token string) (int, error) {
	var res struct {
		TotalSteps int `json:"totalSteps"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/steps/daily", token, nil, false, &res); err != nil {
		return 0, err
	}
	return res.TotalSteps, nil
}

func (c *HTTPClient) GetWeeklySteps(ctx context.Context, token string) ([]models.DayTotal, error) {
	var res struct {
		WeeklyData []models.DayTotal `json:"weeklyData"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/steps/weekly", token, nil, false, &res); err != nil {
		return nil, err
	}
	return res.WeeklyData, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", "", nil, false, nil)
}

// Close exists to satisfy Client; the HTTP transport has nothing to release.
func (c *HTTPClient) Close() error {
	return nil
}
