package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/halcyonlabs/corpus/core"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultMaxContentSize = 32 << 20 // 32 MiB
	maxRedirects          = 5

	// Browser-like user agent; some sites refuse the Go default.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Result holds raw fetched content for one source. It is owned by the caller
// of Fetch and discarded after extraction.
type Result struct {
	Data        []byte
	ContentType string
	Source      core.Source
}

// Fetcher retrieves raw content for sources. Web sources go over HTTP with a
// total timeout; PDF sources are read from the local filesystem. All failures
// are returned as typed *core.FailureError values so a batch coordinator can
// record them without aborting sibling work.
type Fetcher struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	maxContentSize int64
	insecure       bool
	logger         *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithTimeout sets the total timeout for a single web fetch.
// Default is 60 seconds.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		f.timeout = d
		return nil
	}
}

// WithInsecureTLS disables TLS certificate verification. This is an explicit
// opt-in for scraping hosts with broken certificates; it is never enabled
// silently and logs a warning when on.
func WithInsecureTLS(insecure bool) Option {
	return func(f *Fetcher) error {
		f.insecure = insecure
		return nil
	}
}

// WithUserAgent overrides the User-Agent header for web fetches.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) error {
		if ua == "" {
			return fmt.Errorf("user agent must not be empty")
		}
		f.userAgent = ua
		return nil
	}
}

// WithMaxContentSize caps the response body size for web fetches.
// Default is 32 MiB.
func WithMaxContentSize(n int64) Option {
	return func(f *Fetcher) error {
		if n <= 0 {
			return fmt.Errorf("max content size must be positive, got %d", n)
		}
		f.maxContentSize = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFetcher creates a fetcher with the given options.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:        defaultTimeout,
		userAgent:      defaultUserAgent,
		maxContentSize: defaultMaxContentSize,
		logger:         slog.Default().With("component", "fetcher"),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	transport := &http.Transport{
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
	}
	if f.insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		f.logger.Warn("TLS certificate verification disabled")
	}

	f.client = &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (max %d)", maxRedirects)
			}
			return nil
		},
	}

	return f, nil
}

// Fetch retrieves raw content for a single source. Every outcome, success or
// failure, emits one log entry. Failures carry a core.FailureReason and never
// panic past this boundary.
func (f *Fetcher) Fetch(ctx context.Context, src core.Source) (*Result, error) {
	var (
		result *Result
		err    error
	)

	switch src.Kind {
	case core.KindWeb:
		result, err = f.fetchWeb(ctx, src)
	case core.KindPDF:
		result, err = f.fetchFile(src)
	default:
		err = core.Fail(core.ReasonUnsupportedType,
			fmt.Errorf("%w: %q has kind %q", core.ErrUnsupportedSource, src.Identifier, src.Kind))
	}

	if err != nil {
		f.logger.Error("fetch failed",
			"source", src.Identifier,
			"reason", core.ReasonOf(err),
			"err", err)
		return nil, err
	}

	f.logger.Info("fetched source",
		"source", src.Identifier,
		"kind", src.Kind,
		"bytes", len(result.Data))
	return result, nil
}

func (f *Fetcher) fetchWeb(ctx context.Context, src core.Source) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Identifier, nil)
	if err != nil {
		return nil, core.Fail(core.ReasonNetworkError, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyWebError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, core.Fail(core.ReasonNotFound, fmt.Errorf("HTTP %d for %s", resp.StatusCode, src.Identifier))
	case resp.StatusCode != http.StatusOK:
		return nil, core.Fail(core.ReasonNetworkError, fmt.Errorf("HTTP %d for %s", resp.StatusCode, src.Identifier))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxContentSize+1))
	if err != nil {
		return nil, classifyWebError(err)
	}
	if int64(len(body)) > f.maxContentSize {
		return nil, core.Fail(core.ReasonNetworkError,
			fmt.Errorf("content exceeds %d bytes", f.maxContentSize))
	}

	return &Result{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Source:      src,
	}, nil
}

func (f *Fetcher) fetchFile(src core.Source) (*Result, error) {
	info, err := os.Stat(src.Identifier)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.Fail(core.ReasonNotFound, fmt.Errorf("file does not exist: %s", src.Identifier))
		}
		return nil, core.Fail(core.ReasonNetworkError, fmt.Errorf("stat %s: %w", src.Identifier, err))
	}
	if info.IsDir() {
		return nil, core.Fail(core.ReasonUnsupportedType, fmt.Errorf("%s is a directory", src.Identifier))
	}

	data, err := os.ReadFile(src.Identifier)
	if err != nil {
		return nil, core.Fail(core.ReasonNetworkError, fmt.Errorf("read %s: %w", src.Identifier, err))
	}

	return &Result{
		Data:        data,
		ContentType: "application/pdf",
		Source:      src,
	}, nil
}

// classifyWebError maps transport-level errors to the failure taxonomy.
func classifyWebError(err error) *core.FailureError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.Fail(core.ReasonTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return core.Fail(core.ReasonTimeout, err)
	}

	var certVerifyErr *tls.CertificateVerificationError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &certVerifyErr) ||
		errors.As(err, &unknownAuthErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &certInvalidErr) {
		return core.Fail(core.ReasonSSLError, err)
	}

	return core.Fail(core.ReasonNetworkError, err)
}
