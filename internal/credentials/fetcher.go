package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"credentialRotator/internal/models"

	"github.com/tidwall/gjson"
)

// ErrFetch is wrapped by every error returned from Fetch
var ErrFetch = errors.New("failed to fetch credentials")

// Fetcher retrieves credentials from an HTTP endpoint
type Fetcher struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewFetcher creates a Fetcher. The HTTP client has no timeout, an unresponsive
// endpoint blocks the run.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// Fetch performs a single GET against url and parses the body as a flat JSON object.
// Transport errors, non-2xx statuses and bodies that are not a JSON object are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (models.Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	f.Logger.DebugContext(ctx, "requesting credentials", "url", url)
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s for url: %s", ErrFetch, resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrFetch, err)
	}

	creds, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	f.Logger.DebugContext(ctx, "credentials received", "status", resp.StatusCode, "keys", len(creds))
	return creds, nil
}

// Parse converts a JSON object into Credentials. String values are taken as is,
// any other value (number, bool, null, array, object) is rendered by stringify.
func Parse(body []byte) (models.Credentials, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response body is not valid JSON")
	}
	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return nil, fmt.Errorf("response body is not a JSON object: %s", result.Type)
	}

	creds := make(models.Credentials)
	result.ForEach(func(key, value gjson.Result) bool {
		creds[key.String()] = stringify(value)
		return true
	})
	return creds, nil
}
