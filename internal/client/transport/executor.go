package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultUploadTimeout = 60 * time.Second

	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 16 << 20
)

// Executor sends Descriptors to the backend and turns every outcome into a
// Result. It is safe for concurrent use.
type Executor struct {
	baseURL       string
	client        *http.Client
	tracer        trace.TracerProvider
	propagator    propagation.TextMapPropagator
	timeout       time.Duration
	uploadTimeout time.Duration
	log           logging.Logger
	metrics       *metrics.Collectors
	newID         func() string
}

type Option func(*Executor)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Executor) { e.client = c }
}

// WithTracing sets the tracer provider and propagator the default client's
// otelhttp transport uses instead of the otel globals. It has no effect
// together with WithHTTPClient.
func WithTracing(tp trace.TracerProvider, p propagation.TextMapPropagator) Option {
	return func(e *Executor) {
		e.tracer = tp
		e.propagator = p
	}
}

// WithTimeouts overrides the default and upload timeouts; zero keeps the default.
func WithTimeouts(request, upload time.Duration) Option {
	return func(e *Executor) {
		if request > 0 {
			e.timeout = request
		}
		if upload > 0 {
			e.uploadTimeout = upload
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(e *Executor) { e.log = l }
}

func WithMetrics(m *metrics.Collectors) Option {
	return func(e *Executor) { e.metrics = m }
}

// NewExecutor builds an executor for the API rooted at baseURL,
// e.g. "http://127.0.0.1:8000/api".
func NewExecutor(baseURL string, opts ...Option) *Executor {
	e := &Executor{
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       DefaultTimeout,
		uploadTimeout: DefaultUploadTimeout,
		log:           logging.Nop{},
		newID:         func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(e)
	}
	if e.client == nil {
		e.client = &http.Client{Transport: e.instrumented(http.DefaultTransport)}
	}
	return e
}

func (e *Executor) instrumented(base http.RoundTripper) http.RoundTripper {
	var opts []otelhttp.Option
	if e.tracer != nil {
		opts = append(opts, otelhttp.WithTracerProvider(e.tracer))
	}
	if e.propagator != nil {
		opts = append(opts, otelhttp.WithPropagators(e.propagator))
	}
	return otelhttp.NewTransport(base, opts...)
}

// BaseURL is the API root requests are resolved against.
func (e *Executor) BaseURL() string { return e.baseURL }

// Execute sends d with token as bearer credential (unless d.SkipAuth or the
// token is empty) and classifies the response.
func (e *Executor) Execute(ctx context.Context, d Descriptor, token string) Result {
	start := time.Now()
	reqID := e.newID()

	res := e.do(ctx, d, token, reqID)

	outcome := "success"
	if !res.Success {
		outcome = res.Err.Kind.String()
	}
	e.metrics.Request(d.Method, outcome)
	e.log.Debug(ctx, "request done",
		"method", d.Method,
		"path", d.Path,
		"status", res.Status,
		"outcome", outcome,
		"request_id", reqID,
		"latency", time.Since(start),
	)
	return res
}

func (e *Executor) do(ctx context.Context, d Descriptor, token, reqID string) Result {
	body, contentType, err := encodeBody(d)
	if err != nil {
		return Fail(InvalidFailure(err.Error()))
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = e.timeout
		if d.Upload != nil {
			timeout = e.uploadTimeout
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, e.baseURL+d.Target(), reader)
	if err != nil {
		return Fail(InvalidFailure(fmt.Sprintf("build request: %v", err)))
	}

	for k, v := range d.Header {
		req.Header[k] = slices.Clone(v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" && !d.SkipAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Fail(NetworkFailure(MsgTimeout))
		}
		return Fail(NetworkFailure(MsgNetwork))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Fail(NetworkFailure(MsgTimeout))
		}
		return Fail(NetworkFailure(MsgNetwork))
	}

	return classify(resp.StatusCode, raw)
}

func encodeBody(d Descriptor) ([]byte, string, error) {
	if d.Upload != nil {
		return encodeMultipart(d.Upload)
	}
	if d.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(d.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return b, "application/json", nil
}

// encodeMultipart renders u with sorted field names so a replay produces the
// same bytes.
func encodeMultipart(u *Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(u.Fields)) {
		if err := w.WriteField(k, u.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range u.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
