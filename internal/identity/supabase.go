// Package identity: клиент Supabase Auth (GoTrue) для запуска сброса пароля
// у учёток, которые живут вне таблицы users.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"passreset/internal/models"
)

var (
	ErrNotConfigured = errors.New("identity: managed auth source is not configured")
	ErrRequestFailed = errors.New("identity: request failed")
)

const maxErrorBody = 4 << 10

type SupabaseClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewSupabaseClient(baseURL, apiKey string, timeout time.Duration) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type recoverRequest struct {
	Email string `json:"email"`
}

type recoverResponse struct {
	ID string `json:"id"`
}

// TriggerReset просит GoTrue отправить письмо восстановления.
// Любой 2xx значит, что GoTrue принял запрос и письмо шлёт сам; тело
// обычно пустой объект, поэтому id может отсутствовать.
func (c *SupabaseClient) TriggerReset(ctx context.Context, email, redirectTo string) (*models.ManagedIdentity, error) {
	payload, err := json.Marshal(recoverRequest{Email: email})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/auth/v1/recover"
	if redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out recoverResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&out)
	return &models.ManagedIdentity{ID: out.ID, Email: email}, nil
}

// Disabled: заглушка, когда SUPABASE_URL/SUPABASE_KEY не заданы.
type Disabled struct{}

func (Disabled) TriggerReset(context.Context, string, string) (*models.ManagedIdentity, error) {
	return nil, ErrNotConfigured
}
