package platform

import (
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // G505: CloudStack request signing is defined as HMAC-SHA1
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultAPIPath        = "/client/api"
	maxAPIResponseBytes   = 10 << 20 // 10 MB
	defaultRequestsPerSec = 10
)

// Compile-time interface checks.
var (
	_ Client          = (*CloudStackClient)(nil)
	_ InstanceCounter = (*CloudStackClient)(nil)
)

// CloudStackClient implements Client over the CloudStack HTTP query API.
// Requests are signed with the account's API key and secret key.
type CloudStackClient struct {
	endpoint   string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// CloudStackOption configures a CloudStackClient.
type CloudStackOption func(*CloudStackClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) CloudStackOption {
	return func(cs *CloudStackClient) { cs.httpClient = c }
}

// WithRateLimit limits outgoing requests to r per second with the given burst.
// rate.Inf disables limiting.
func WithRateLimit(r rate.Limit, burst int) CloudStackOption {
	return func(cs *CloudStackClient) { cs.limiter = rate.NewLimiter(r, burst) }
}

// NewCloudStackClient creates a client for the API at apiURL.
// A bare host gets https:// and the default /client/api path.
func NewCloudStackClient(apiURL, apiKey, secretKey string, opts ...CloudStackOption) (*CloudStackClient, error) {
	if apiKey == "" || secretKey == "" {
		return nil, NewPlatformError(ErrAuthRequired, "API key and secret key are required",
			"Set FIZZCHECK_API_KEY and FIZZCHECK_SECRET_KEY")
	}
	endpoint, err := normalizeEndpoint(apiURL)
	if err != nil {
		return nil, err
	}

	cs := &CloudStackClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: DefaultAPITimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSec), defaultRequestsPerSec),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs, nil
}

func normalizeEndpoint(apiURL string) (string, error) {
	raw := strings.TrimSpace(apiURL)
	if raw == "" {
		return "", NewPlatformError(ErrInvalidParameter, "API URL is empty", "Set FIZZCHECK_API_URL")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", NewPlatformError(ErrInvalidParameter, fmt.Sprintf("invalid API URL %q", apiURL), "")
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = defaultAPIPath
	}
	u.RawQuery = ""
	return u.String(), nil
}

// Endpoint returns the normalized API endpoint.
func (c *CloudStackClient) Endpoint() string {
	return c.endpoint
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (c *CloudStackClient) ListCapabilities(ctx context.Context) (*Capabilities, error) {
	var out struct {
		Capability *Capabilities `json:"capability"`
	}
	if err := c.call(ctx, "listCapabilities", url.Values{}, &out); err != nil {
		return nil, err
	}
	if out.Capability == nil {
		return nil, NewPlatformError(ErrInvalidResponse, "listCapabilities returned no capability", "")
	}
	return out.Capability, nil
}

func (c *CloudStackClient) FizzBuzz(ctx context.Context, req FizzBuzzRequest) (*FizzBuzzResponse, error) {
	params := url.Values{}
	if req.Number != nil {
		params.Set("number", strconv.Itoa(*req.Number))
	}
	var out struct {
		FizzBuzz *FizzBuzzResponse `json:"fizzbuzz"`
	}
	if err := c.call(ctx, "fizzBuzz", params, &out); err != nil {
		return nil, err
	}
	if out.FizzBuzz == nil {
		// No answer object: let the caller judge it as malformed.
		return &FizzBuzzResponse{}, nil
	}
	return out.FizzBuzz, nil
}

func (c *CloudStackClient) ListVirtualMachines(ctx context.Context, p ListVirtualMachinesParams) ([]VirtualMachine, error) {
	params := url.Values{}
	if p.State != "" {
		params.Set("state", p.State)
	}
	if p.Keyword != "" {
		params.Set("keyword", p.Keyword)
	}
	if p.ListAll {
		params.Set("listall", "true")
	}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		params.Set("pagesize", strconv.Itoa(p.PageSize))
	}
	var out struct {
		Count          int              `json:"count"`
		VirtualMachine []VirtualMachine `json:"virtualmachine"`
	}
	if err := c.call(ctx, "listVirtualMachines", params, &out); err != nil {
		return nil, err
	}
	return out.VirtualMachine, nil
}

func (c *CloudStackClient) DestroyVirtualMachine(ctx context.Context, vmID string, expunge bool) (*AsyncJob, error) {
	params := url.Values{}
	params.Set("id", vmID)
	if expunge {
		params.Set("expunge", "true")
	}
	var job AsyncJob
	if err := c.call(ctx, "destroyVirtualMachine", params, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CountInstances returns the number of guest VMs visible to the account.
func (c *CloudStackClient) CountInstances(ctx context.Context) (int, error) {
	vms, err := c.ListVirtualMachines(ctx, ListVirtualMachinesParams{})
	if err != nil {
		return 0, err
	}
	return len(vms), nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// call signs and sends one command, then decodes the "<command>response"
// object into out. Each call is attempted exactly once.
func (c *CloudStackClient) call(ctx context.Context, command string, params url.Values, out any) error {
	if err := c.wait(ctx, command); err != nil {
		return err
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("command", command)
	q.Set("response", "json")
	q.Set("apiKey", c.apiKey)
	q.Set("signature", Sign(q, c.secretKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return NewPlatformError(ErrAPIError, fmt.Sprintf("failed to create %s request: %v", command, err), "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return NewPlatformError(ErrAPIError, fmt.Sprintf("failed to read %s response: %v", command, err), "")
	}

	if resp.StatusCode != http.StatusOK {
		return mapAPIError(resp.StatusCode, command, body)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return NewPlatformError(ErrInvalidResponse, fmt.Sprintf("%s returned invalid JSON: %v", command, err), "")
	}
	raw, ok := envelope[responseKey(command)]
	if !ok {
		return NewPlatformError(ErrInvalidResponse,
			fmt.Sprintf("%s response is missing %q", command, responseKey(command)), "")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return NewPlatformError(ErrInvalidResponse, fmt.Sprintf("failed to decode %s response: %v", command, err), "")
	}
	return nil
}

// wait blocks until the limiter admits one request. A zero limit never
// refills, so once its burst is spent requests are refused instead of waiting.
func (c *CloudStackClient) wait(ctx context.Context, command string) error {
	if c.limiter.Limit() == 0 {
		if !c.limiter.Allow() {
			return NewPlatformError(ErrAPIRateLimited, command+": request budget exhausted", "Raise api.rateLimit or api.burst")
		}
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return mapTransportError(ctx.Err())
		}
		return NewPlatformError(ErrAPIRateLimited, fmt.Sprintf("%s: %v", command, err), "Raise api.rateLimit or api.burst")
	}
	return nil
}

func responseKey(command string) string {
	return strings.ToLower(command) + "response"
}

// Sign computes the CloudStack request signature: HMAC-SHA1 over the
// lowercased, key-sorted, URL-encoded query, base64 encoded.
// A "signature" entry in params is ignored.
func Sign(params url.Values, secretKey string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			parts = append(parts, k+"="+encodeValue(v))
		}
	}
	payload := strings.ToLower(strings.Join(parts, "&"))

	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// encodeValue URL-encodes v the way the CloudStack server does before verifying
// (java.net.URLEncoder, with spaces as %20).
func encodeValue(v string) string {
	return javaEscaper.Replace(url.QueryEscape(v))
}

var javaEscaper = strings.NewReplacer("+", "%20", "%2A", "*", "~", "%7E")

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewPlatformError(ErrAPITimeout, "API request timed out", "Check API availability or raise api.timeout")
	}
	if errors.Is(err, context.Canceled) {
		return NewPlatformError(ErrAPIError, "request canceled", "")
	}
	if code, isNet := MapNetworkError(err); isNet {
		return NewPlatformError(code, fmt.Sprintf("API unreachable: %v", err), "Check API URL and network connectivity")
	}
	return NewPlatformError(ErrAPIError, err.Error(), "")
}
