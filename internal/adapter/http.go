package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eaglebank/account-service/shared/apperr"
)

const maxErrorBody = 64 << 10

// NewHTTPClient returns the client shared by the downstream adapters. The
// per-call deadline comes from the Guard; this timeout is only a backstop.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

type errorBody struct {
	Message string `json:"message"`
}

// getJSON performs a GET and decodes a 2xx body into out. 404 becomes
// apperr.NotFound and 400 apperr.BadRequest, carrying the downstream message.
// Any other non-2xx status, transport and decoding failures come back as plain
// errors.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("%s", downstreamMessage(resp))
	case resp.StatusCode == http.StatusBadRequest:
		return apperr.BadRequest("%s", downstreamMessage(resp))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s returned error status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func downstreamMessage(resp *http.Response) string {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}
