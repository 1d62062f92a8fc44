package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
)

// EmailSink relays notifications through a form-to-email service: a JSON
// POST with an access key, subject, and flattened fields.
type EmailSink struct {
	client    *http.Client
	endpoint  string
	accessKey string
	to        string
}

var _ Sink = (*EmailSink)(nil)

// NewEmailSink builds the relay sink. endpoint is the form service URL.
func NewEmailSink(client *http.Client, endpoint, accessKey, to string) *EmailSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailSink{client: client, endpoint: endpoint, accessKey: accessKey, to: to}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Deliver(ctx context.Context, subject string, payload map[string]any) error {
	body := map[string]any{
		"access_key": s.accessKey,
		"subject":    subject,
		"to":         s.to,
	}
	for k, v := range payload {
		body[k] = v
	}
	return postJSON(ctx, s.client, s.endpoint, body)
}

// SheetSink appends notifications as rows to a spreadsheet webhook.
type SheetSink struct {
	client   *http.Client
	endpoint string
}

var _ Sink = (*SheetSink)(nil)

// NewSheetSink builds the spreadsheet webhook sink.
func NewSheetSink(client *http.Client, endpoint string) *SheetSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &SheetSink{client: client, endpoint: endpoint}
}

func (s *SheetSink) Name() string { return "sheet" }

func (s *SheetSink) Deliver(ctx context.Context, subject string, payload map[string]any) error {
	body := map[string]any{"event": subject}
	for k, v := range payload {
		body[k] = v
	}
	return postJSON(ctx, s.client, s.endpoint, body)
}

func postJSON(ctx context.Context, client *http.Client, url string, body map[string]any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
