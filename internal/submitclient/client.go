// Package submitclient talks to the intake API: identity sync, slot
// counts, application submission, and interview reservation.
package submitclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dialastudent/stocktaker-intake/pkg/logging"
)

// User mirrors the server's user record.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	HasCompletedForm bool   `json:"hasCompletedForm"`
}

// UserStatus is the status lookup result. Exists false is a normal
// outcome, not an error.
type UserStatus struct {
	Exists bool  `json:"exists"`
	User   *User `json:"user,omitempty"`
}

// UpsertRequest syncs identity fields from the auth provider.
type UpsertRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ApplyResponse is returned by the application endpoint; ApplicationID is
// the booking reference the interview reservation is attributed to.
type ApplyResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
	Message       string `json:"message,omitempty"`
}

// BookSlotRequest reserves one interview slot.
type BookSlotRequest struct {
	ApplicationID string `json:"applicationId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// APIError carries a server failure, preferring the server-supplied
// message when one was present in the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client is an HTTP client for the intake API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithInsecureTLS disables certificate verification. Development only;
// mirrors the server's production-vs-development TLS toggle.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		c.httpClient.Transport = transport
	}
}

// NewClient creates an intake API client. baseURL includes the /api
// prefix, e.g. "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetStatus looks up whether the user exists and has completed the form.
func (c *Client) GetStatus(ctx context.Context, userID string) (*UserStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+userID+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("submitclient: create status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitclient: status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, c.apiError(resp)
	}

	var status UserStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("submitclient: decode status response: %w", err)
	}
	return &status, nil
}

// UpsertUser syncs the user's identity fields.
func (c *Client) UpsertUser(ctx context.Context, req UpsertRequest) error {
	return c.postJSON(ctx, "/users/upsert", req, nil)
}

// Apply submits the application and returns the booking reference.
func (c *Client) Apply(ctx context.Context, userID string, formData map[string]string) (*ApplyResponse, error) {
	payload := map[string]any{
		"userId":      userID,
		"formData":    formData,
		"submittedAt": time.Now().UTC().Format(time.RFC3339),
	}
	var out ApplyResponse
	if err := c.postJSON(ctx, "/apply", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookSlot reserves the chosen interview slot.
func (c *Client) BookSlot(ctx context.Context, req BookSlotRequest) error {
	return c.postJSON(ctx, "/book-slot", req, nil)
}

// BookedSlots fetches live booking counts keyed by date then time.
func (c *Client) BookedSlots(ctx context.Context) (map[string]map[string]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/booked-slots", nil)
	if err != nil {
		return nil, fmt.Errorf("submitclient: create booked-slots request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitclient: booked-slots request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var counts map[string]map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, fmt.Errorf("submitclient: decode booked-slots response: %w", err)
	}
	return counts, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submitclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submitclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitclient: request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("submitclient: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
