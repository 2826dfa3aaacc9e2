package plansfeatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petcare-tracker/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plans-features client not configured")
	ErrPlansUnauthorized  = errors.New("plans-features unauthorized")
	ErrPlansUpstream      = errors.New("plans-features upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

// Client consulta el servicio de planes, que conoce las compras del usuario.
type Client struct {
	http *httpclient.Client
}

// NewClient devuelve un cliente sin configurar si faltan BaseURL o APIKey.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return &Client{}, nil
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL: base,
		Timeout: timeout,
		Headers: map[string]string{h: key},
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil
}

// CapabilitiesResponse: {"capabilities": {"premium": true}}
type CapabilitiesResponse struct {
	Capabilities map[string]bool `json:"capabilities"`
}

// GetCapabilities trae las capabilities compradas por userID.
func (c *Client) GetCapabilities(ctx context.Context, userID string) (CapabilitiesResponse, error) {
	if !c.IsConfigured() {
		return CapabilitiesResponse{}, ErrPlansNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CapabilitiesResponse{}, errors.New("userID required")
	}

	var out CapabilitiesResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/capabilities?user_id="+url.QueryEscape(userID), nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return CapabilitiesResponse{}, ErrPlansUnauthorized
		}
		return CapabilitiesResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}
	if out.Capabilities == nil {
		out.Capabilities = map[string]bool{}
	}
	return out, nil
}
