package proxy

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

	friendly "modelhub/internal/errors"
)

// SettingPublicModelHub is the general-settings field gating public hub access.
const SettingPublicModelHub = "enable_public_model_hub"

// ErrNoToken is returned when a call is attempted without an access token.
// Callers are expected to suppress fetching entirely in that case.
var ErrNoToken = errors.New("no access token")

// ModelGroup is one proxy-routable model (or alias) with capability metadata.
// Token limits are optional on the wire; nil means the proxy does not know.
type ModelGroup struct {
	ModelGroup              string   `json:"model_group"`
	Mode                    string   `json:"mode"`
	SupportsFunctionCalling bool     `json:"supports_function_calling"`
	SupportsVision          bool     `json:"supports_vision"`
	MaxInputTokens          *int64   `json:"max_input_tokens"`
	MaxOutputTokens         *int64   `json:"max_output_tokens"`
	SupportedOpenAIParams   []string `json:"supported_openai_params"`
}

// Client talks to the serving proxy's management API. Requests carry the
// caller's bearer token; no retry or backoff is attempted (last fetch wins).
type Client struct {
	base      string
	token     string
	userAgent string
	http      *http.Client
}

// New creates a Client for the given proxy base URL and access token.
func New(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests and to
// honor network.timeout_seconds).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// HasToken reports whether the client holds a non-empty access token.
func (c *Client) HasToken() bool { return strings.TrimSpace(c.token) != "" }

// ModelGroups fetches the model group listing visible to the token.
func (c *Client) ModelGroups(ctx context.Context) ([]ModelGroup, error) {
	body, err := c.get(ctx, "/model_group/info", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []ModelGroup `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, friendly.DecodeError("/model_group/info", err)
	}
	for i, g := range resp.Data {
		if g.ModelGroup == "" {
			return nil, friendly.DecodeError("/model_group/info",
				fmt.Errorf("entry %d missing model_group", i))
		}
	}
	return resp.Data, nil
}

// GetSetting reads a named boolean general setting. A setting the proxy has
// never stored decodes as false.
func (c *Client) GetSetting(ctx context.Context, name string) (bool, error) {
	body, err := c.get(ctx, "/config/field/info", url.Values{"field_name": {name}})
	if err != nil {
		return false, err
	}

	var resp struct {
		FieldName  string `json:"field_name"`
		FieldValue *bool  `json:"field_value"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, friendly.DecodeError("/config/field/info", err)
	}
	if resp.FieldValue == nil {
		return false, nil
	}
	return *resp.FieldValue, nil
}

// UpdateSetting writes a named boolean general setting. Callers update their
// local flag only after a nil return.
func (c *Client) UpdateSetting(ctx context.Context, name string, value bool) error {
	payload := map[string]any{
		"field_name":  name,
		"field_value": value,
		"config_type": "general_settings",
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/config/field/update", nil, bytes.NewReader(b))
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, q, nil)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader) ([]byte, error) {
	if !c.HasToken() {
		return nil, ErrNoToken
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, friendly.NetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, friendly.NetworkError(err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, friendly.AuthError(resp.StatusCode, fmt.Errorf("%s %s: %s", method, path, strings.TrimSpace(string(b))))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return b, nil
}
