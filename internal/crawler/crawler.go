// Package crawler is the page-retrieval collaborator: given a URL it returns
// rendered HTML text or fails. Rendering dynamic content is out of scope
// here; the client fetches what the server sends.
package crawler

import (
	"compress/gzip"
	"context"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// browser-like UA: a surprising number of sites serve bot UAs an empty shell
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.81 Safari/537.36"

type HTTPClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	sizeCap   int64
	userAgent string
}

// NewHTTPClient builds a client with transport tuning, a response size cap,
// and a polite request rate (rps requests per second; <=0 disables limiting).
func NewHTTPClient(timeout, dialTimeout time.Duration, sizeCap int64, rps float64) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter:   limiter,
		sizeCap:   sizeCap,
		userAgent: defaultUserAgent,
	}
}

// Fetch retrieves a page and returns its HTML text plus the declared content
// type. Non-HTML responses and error statuses fail.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", eris.New("crawler: invalid url")
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return "", "", eris.Wrap(err, "crawler: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", "", eris.Wrap(err, "crawler: build request")
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", "", eris.Wrap(err, "crawler: fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", "", eris.Errorf("crawler: http status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	// allow empty media type (some servers omit it), reject everything
	// that definitely is not html
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		return "", "", eris.Errorf("crawler: non-html content %q", mediaType)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", "", eris.Wrap(err, "crawler: gzip reader")
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, h.sizeCap))
	if err != nil {
		return "", "", eris.Wrap(err, "crawler: read body")
	}
	return string(data), contentType, nil
}

// Close releases idle connections. Call on every exit path of a session.
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}
