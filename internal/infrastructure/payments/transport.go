package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"

	"go.uber.org/zap"
)

const (
	defaultGatewayTimeout = 30 * time.Second
	maxResponseBytes      = 1 << 20
)

// Request is one call to a remote processor.
type Request struct {
	Method      string
	URL         string
	Timeout     time.Duration
	Headers     map[string]string
	UserAgent   string
	ContentType string
	Body        []byte
}

// Transport sends gateway requests and classifies failures as *entities.GatewayError.
type Transport struct {
	gateway   string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
}

func NewTransport(gateway string, client *http.Client, timeout time.Duration, userAgent string, logger *zap.Logger) *Transport {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{gateway: gateway, client: client, timeout: timeout, userAgent: userAgent, logger: logger.Named("payment.transport")}
}

// Send returns the response body. A non-200 status is reported as an HTTPStatus
// error, and the body is still returned so the caller can read processor details.
func (t *Transport) Send(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = t.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &entities.GatewayError{Gateway: t.gateway, Kind: entities.GatewayErrorCommunication, Message: "invalid request", Err: err}
	}
	ua := req.UserAgent
	if ua == "" {
		ua = t.userAgent
	}
	if ua != "" {
		httpReq.Header.Set("User-Agent", ua)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Warn("gateway unreachable", zap.String("gateway", t.gateway), zap.String("url", req.URL), zap.Error(err))
		return nil, &entities.GatewayError{Gateway: t.gateway, Kind: entities.GatewayErrorCommunication, Message: "no response from the payment processor", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &entities.GatewayError{Gateway: t.gateway, Kind: entities.GatewayErrorCommunication, Message: "response could not be read", Err: err}
	}
	t.logger.Debug("gateway call", zap.String("gateway", t.gateway), zap.String("method", method), zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return body, &entities.GatewayError{
			Gateway:    t.gateway,
			Kind:       entities.GatewayErrorHTTPStatus,
			StatusCode: resp.StatusCode,
			Message:    httpStatusMessage(resp.StatusCode),
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &entities.GatewayError{Gateway: t.gateway, Kind: entities.GatewayErrorCommunication, Message: "no response from the payment processor"}
	}
	return body, nil
}

// SendJSON marshals in, sends it and decodes the reply into out.
func (t *Transport) SendJSON(ctx context.Context, method, endpoint string, headers map[string]string, in, out any) ([]byte, error) {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", t.gateway, err)
		}
		payload = b
	}
	body, err := t.Send(ctx, Request{Method: method, URL: endpoint, Headers: headers, ContentType: "application/json", Body: payload})
	if err != nil {
		return body, err
	}
	if out != nil {
		if err := DecodeJSON(t.gateway, body, out); err != nil {
			return body, err
		}
	}
	return body, nil
}

// DecodeJSON reports undecodable bodies as MalformedResponse.
func DecodeJSON(gateway string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &entities.GatewayError{Gateway: gateway, Kind: entities.GatewayErrorMalformedResponse, Message: "the payment processor sent an unreadable response", Err: err}
	}
	return nil
}

// EncodeForm renders data as an urlencoded body. Slices repeat their key and
// nested maps become key[sub]=value. Keys are sorted.
func EncodeForm(data map[string]any) string {
	var parts []string
	encodeFormValue(&parts, "", data)
	return strings.Join(parts, "&")
}

func encodeFormValue(parts *[]string, key string, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := k
			if key != "" {
				name = key + "[" + k + "]"
			}
			encodeFormValue(parts, name, val[k])
		}
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		encodeFormValue(parts, key, m)
	case []string:
		for _, s := range val {
			*parts = append(*parts, url.QueryEscape(key)+"="+url.QueryEscape(s))
		}
	case []any:
		for _, item := range val {
			encodeFormValue(parts, key, item)
		}
	case nil:
		*parts = append(*parts, url.QueryEscape(key)+"=")
	default:
		*parts = append(*parts, url.QueryEscape(key)+"="+url.QueryEscape(fmt.Sprint(val)))
	}
}

func httpStatusMessage(code int) string {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "the payment processor rejected the merchant credentials"
	case code == http.StatusNotFound:
		return "the payment processor endpoint was not found"
	case code == http.StatusPaymentRequired:
		return "the payment was declined"
	case code >= 500:
		return "the payment processor is not available"
	}
	if text := http.StatusText(code); text != "" {
		return strings.ToLower(text)
	}
	return "unexpected response from the payment processor"
}
