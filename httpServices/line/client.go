// Package line is the LINE Messaging API client used to push booking
// notifications to customers.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.line.me"

type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient builds a client with the channel access token. An empty token
// is allowed; pushes will fail and be logged by the dispatcher, which is
// the desired degraded behavior in development.
func NewClient(accessToken string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
}

// Push sends a single text message to the given LINE user ID.
func (c *Client) Push(ctx context.Context, to, text string) error {
	if to == "" {
		return errors.New("line user id is empty")
	}

	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/push", bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return errors.New("LINE API returned " + resp.Status + ": " + apiErr.Message)
		}
		return errors.New("LINE API returned non-OK status: " + resp.Status)
	}

	return nil
}
