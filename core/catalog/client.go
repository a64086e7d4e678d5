package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// TemplateType values for level-4 configuration definitions.
const (
	TemplateFixed    = "fixed"
	TemplateVariable = "variable"
)

// Option is one selectable option of a level-4 configuration input.
type Option struct {
	// ID is the option's catalog identifier.
	ID string `json:"id"`
	// Value is the stored selection value, when it differs from the ID.
	Value string `json:"value,omitempty"`
	// Label is the human-readable option label.
	Label string `json:"label"`
}

// Definition is the canonical catalog entry for one level-4 configuration.
type Definition struct {
	// ConfigID is the configuration identifier.
	ConfigID string `json:"config_id"`
	// FieldLabel is the display label of the configured input.
	FieldLabel string `json:"field_label"`
	// TemplateType is "fixed" or "variable".
	TemplateType string `json:"template_type"`
	// Options is the ordered option list.
	Options []Option `json:"options"`
}

// Client defines the interface to the remote catalog service. Every method
// takes a batch of ids and resolves them in a single round-trip; ids the
// service does not know are simply absent from the returned map.
type Client interface {
	// LookupConfigurations resolves level-4 configuration definitions.
	LookupConfigurations(ctx context.Context, ids []string) (map[string]Definition, error)
	// LookupProductLinks resolves published product-information URLs by product id.
	LookupProductLinks(ctx context.Context, ids []string) (map[string]string, error)
	// LookupParents resolves level-3 product ids to their level-2 parent ids.
	LookupParents(ctx context.Context, ids []string) (map[string]string, error)
}

// NewClient creates an HTTP catalog client based on the configuration.
// When cfg.CacheTTLSeconds is positive the client is wrapped in the TTL
// cache so repeated exports don't refetch stable definitions.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	var client Client = &httpClient{
		base:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey: cfg.ApiKey,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}

	if cfg.CacheTTLSeconds > 0 {
		client = NewCachingClient(client, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}
	return client
}

type httpClient struct {
	base   string
	apiKey string
	http   *http.Client
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

func (c *httpClient) LookupConfigurations(ctx context.Context, ids []string) (map[string]Definition, error) {
	if len(ids) == 0 {
		return map[string]Definition{}, nil
	}
	var payload struct {
		Configurations map[string]Definition `json:"configurations"`
	}
	if err := c.post(ctx, "/v1/configurations/batch", ids, &payload); err != nil {
		return nil, err
	}
	if payload.Configurations == nil {
		payload.Configurations = map[string]Definition{}
	}
	return payload.Configurations, nil
}

func (c *httpClient) LookupProductLinks(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var payload struct {
		Links map[string]string `json:"links"`
	}
	if err := c.post(ctx, "/v1/products/links/batch", ids, &payload); err != nil {
		return nil, err
	}
	if payload.Links == nil {
		payload.Links = map[string]string{}
	}
	return payload.Links, nil
}

func (c *httpClient) LookupParents(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var payload struct {
		Parents map[string]string `json:"parents"`
	}
	if err := c.post(ctx, "/v1/products/parents/batch", ids, &payload); err != nil {
		return nil, err
	}
	if payload.Parents == nil {
		payload.Parents = map[string]string{}
	}
	return payload.Parents, nil
}

func (c *httpClient) post(ctx context.Context, path string, ids []string, out any) error {
	body, err := json.Marshal(batchRequest{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to encode catalog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the error message, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("catalog request %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response from %s: %w", path, err)
	}
	return nil
}
