package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/akademia-dev/akademia-backend/internal/pkg/env"
)

const defaultEskizBaseURL = "https://notify.eskiz.uz/api"

// EskizClient talks to the Eskiz SMS gateway. Auth tokens are fetched lazily
// and cached until the gateway rejects them.
type EskizClient struct {
	Email    string
	Password string
	BaseURL  string
	From     string

	HTTPClient *http.Client

	mu    sync.Mutex
	token string
}

func NewEskizClientFromEnv() *EskizClient {
	return &EskizClient{
		Email:    strings.TrimSpace(env.GetEnv("ESKIZ_EMAIL", "")),
		Password: strings.TrimSpace(env.GetEnv("ESKIZ_PASSWORD", "")),
		BaseURL:  strings.TrimRight(env.GetEnv("ESKIZ_BASE_URL", defaultEskizBaseURL), "/"),
		From:     strings.TrimSpace(env.GetEnv("ESKIZ_FROM", "4546")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendSMS delivers one message to a single phone number.
func (c *EskizClient) SendSMS(ctx context.Context, phone, text string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errors.New("phone number is required")
	}

	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("mobile_phone", strings.TrimPrefix(phone, "+"))
	form.Set("message", text)
	form.Set("from", c.From)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/message/sms/send", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired; drop it so the next send re-authenticates.
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return fmt.Errorf("eskiz send unauthorized: %s", string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("eskiz send failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *EskizClient) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	if c.Email == "" || c.Password == "" {
		return "", errors.New("ESKIZ_EMAIL/ESKIZ_PASSWORD are not configured")
	}

	form := url.Values{}
	form.Set("email", c.Email)
	form.Set("password", c.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("eskiz login failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Data.Token) == "" {
		return "", errors.New("eskiz login returned empty token")
	}
	c.token = out.Data.Token
	return c.token, nil
}
