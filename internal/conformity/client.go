package conformity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryPause = 2 * time.Second
)

// Client talks to the Conformity template-scanner API for one region.
type Client struct {
	apiKey     string
	region     string
	accountID  string
	profileID  string
	baseURL    string
	httpClient *http.Client
	retryPause time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAccountID scans against an existing Conformity account so its rule
// settings apply.
func WithAccountID(id string) Option {
	return func(c *Client) { c.accountID = id }
}

// WithProfileID scans with the rule settings of a Conformity profile.
func WithProfileID(id string) Option {
	return func(c *Client) { c.profileID = id }
}

// WithTimeout bounds each scan request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithBaseURL overrides the endpoint URL. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithRetryPause overrides the pause before the single retry.
func WithRetryPause(d time.Duration) Option {
	return func(c *Client) { c.retryPause = d }
}

// NewClient creates a client for the given API key and Conformity region.
func NewClient(apiKey, region string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		region:     region,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryPause: defaultRetryPause,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s-api.cloudconformity.com/v1/template-scanner/scan", c.region)
}

// JSON:API request body for the template scanner.
type scanRequest struct {
	Data scanRequestData `json:"data"`
}

type scanRequestData struct {
	Attributes scanRequestAttributes `json:"attributes"`
}

type scanRequestAttributes struct {
	Type      string `json:"type"`
	Contents  string `json:"contents"`
	AccountID string `json:"accountId,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
}

type scanResponse struct {
	Data []scanResponseItem `json:"data"`
}

type scanResponseItem struct {
	ID         string `json:"id"`
	Attributes struct {
		Status          string `json:"status"`
		RiskLevel       string `json:"risk-level"`
		PrettyRiskLevel string `json:"pretty-risk-level"`
		Message         string `json:"message"`
		Resource        string `json:"resource"`
		RuleTitle       string `json:"rule-title"`
	} `json:"attributes"`
	Relationships struct {
		Rule struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"rule"`
	} `json:"relationships"`
}

type errorResponse struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Scan submits template contents and returns every failed check the
// service reports, unfiltered. Checks with status SUCCESS are passed
// checks and are dropped. A request that fails with a transport error or
// a 5xx response is retried once after a short pause; 4xx responses are
// never retried.
func (c *Client) Scan(ctx context.Context, contents string) ([]Finding, error) {
	body, err := json.Marshal(scanRequest{
		Data: scanRequestData{
			Attributes: scanRequestAttributes{
				Type:      "cloudformation-template",
				Contents:  contents,
				AccountID: c.accountID,
				ProfileID: c.profileID,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode scan request: %w", err)
	}

	findings, err := c.post(ctx, body)
	if err != nil && errors.Is(err, ErrServiceUnavailable) {
		slog.Warn("Scan request failed, retrying once", "region", c.region, "error", err)
		select {
		case <-time.After(c.retryPause):
		case <-ctx.Done():
			return nil, &ScanError{Detail: "interrupted before retry", cause: ErrTimeout}
		}
		findings, err = c.post(ctx, body)
	}
	return findings, err
}

func (c *Client) post(ctx context.Context, body []byte) ([]Finding, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.api+json")
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ScanError{cause: ErrTimeout}
		}
		var uerr interface{ Timeout() bool }
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, &ScanError{cause: ErrTimeout}
		}
		return nil, &ScanError{Detail: err.Error(), cause: ErrServiceUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, scanErrorFor(resp)
	}

	var parsed scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ScanError{Status: resp.StatusCode, Detail: err.Error(), cause: ErrServiceUnavailable}
	}

	findings := make([]Finding, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		if item.Attributes.Status == "SUCCESS" {
			continue
		}
		findings = append(findings, Finding{
			ID:              item.ID,
			Status:          item.Attributes.Status,
			RiskLevel:       RiskLevel(item.Attributes.RiskLevel),
			PrettyRiskLevel: item.Attributes.PrettyRiskLevel,
			Message:         item.Attributes.Message,
			Resource:        fixResource(item.Attributes.Resource),
			RuleID:          item.Relationships.Rule.Data.ID,
			RuleTitle:       item.Attributes.RuleTitle,
		})
	}
	slog.Debug("Scan completed", "checks", len(parsed.Data), "findings", len(findings))
	return findings, nil
}

func scanErrorFor(resp *http.Response) *ScanError {
	detail := ""
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var parsed errorResponse
		if json.Unmarshal(raw, &parsed) == nil && len(parsed.Errors) > 0 {
			detail = parsed.Errors[0].Detail
		}
	}

	cause := ErrTemplateRejected
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		cause = ErrAuthenticationFailed
	case resp.StatusCode >= 500:
		cause = ErrServiceUnavailable
	}
	return &ScanError{Status: resp.StatusCode, Detail: detail, cause: cause}
}

// The scanner evaluates the template against a synthetic account and
// reports some resources as ARNs in that account instead of by their
// template name. Map those back so exclusions and output stay readable.
func fixResource(resource string) string {
	// arn:aws:cloudtrail:us-east-1:123456789012:trail/RESOURCE-RANDOM
	if rest, ok := strings.CutPrefix(resource, "arn:aws:cloudtrail:us-east-1:123456789012:trail/"); ok {
		name, _, _ := strings.Cut(rest, "-")
		return name
	}
	// arn:aws:sns:us-east-1:123456789012:RESOURCE
	if strings.HasPrefix(resource, "arn:aws:sns:us-east-1:123456789012") {
		parts := strings.Split(resource, ":")
		return parts[len(parts)-1]
	}
	return resource
}
