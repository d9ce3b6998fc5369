package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notification is one push to one recipient. BookingID/EventRequestID double
// as dedup tags: the gateway and the receiving client use them to suppress
// repeats of the same reminder.
type Notification struct {
	UserID         string `json:"userId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	URL            string `json:"url"`
	BookingID      string `json:"bookingId,omitempty"`
	EventRequestID string `json:"eventRequestId,omitempty"`
	Reminder       bool   `json:"reminder"`
}

// PushGatewayClient talks to the external push-delivery gateway. The gateway
// owns fan-out to the recipient's registered endpoints; this client only
// reports whether the gateway accepted the notification.
type PushGatewayClient struct {
	url    string
	token  string
	client *http.Client
}

func NewPushGatewayClient(url, token string) *PushGatewayClient {
	return &PushGatewayClient{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *PushGatewayClient) Send(ctx context.Context, n Notification) error {
	reqBody, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d body=%q", resp.StatusCode, string(body))
	}

	return nil
}
