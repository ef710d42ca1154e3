// Package notify delivers messages as Pushbullet note pushes.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.pushbullet.com"
	pushesPath     = "/v2/pushes"
	requestTimeout = 15 * time.Second
)

// ErrDelivery is wrapped by every failed Send.
var ErrDelivery = errors.New("notification not delivered")

// Notifier sends one titled message.
type Notifier interface {
	Send(ctx context.Context, title, body string) error
}

var _ Notifier = (*Pushbullet)(nil)

// Pushbullet pushes notes to every device on the token's account.
type Pushbullet struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewPushbullet returns a client for the API at baseURL, or the public API if
// baseURL is empty. A nil client uses one with a short timeout.
func NewPushbullet(token, baseURL string, client *http.Client) *Pushbullet {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &Pushbullet{
		token:   token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// notePush is the body of a note push request.
type notePush struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// apiError is the error envelope Pushbullet returns with non-2xx statuses.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Pushbullet) Send(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(notePush{Type: "note", Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+pushesPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Access-Token", p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var apiErr apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("%w: %s: %s", ErrDelivery, resp.Status, apiErr.Error.Message)
	}
	return fmt.Errorf("%w: %s", ErrDelivery, resp.Status)
}
