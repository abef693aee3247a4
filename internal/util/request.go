package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	json "github.com/json-iterator/go"
)

// JSON is the codec used for every payload and for CLI output.
var JSON = json.ConfigCompatibleWithStandardLibrary

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Code)
}

// Request is a single outgoing call. It is built, sent once and discarded;
// nothing is retried.
type Request struct {
	client *http.Client
	method string
	url    string
	body   string
	header http.Header
}

func Get(c *http.Client, target string) *Request {
	return &Request{client: c, method: http.MethodGet, url: target, header: http.Header{}}
}

func Post(c *http.Client, target, body string) *Request {
	r := &Request{client: c, method: http.MethodPost, url: target, body: body, header: http.Header{}}
	r.header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

func (r *Request) URL() string { return r.url }

// Build returns the underlying *http.Request without sending it.
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range r.header {
		req.Header[k] = v
	}
	if host := r.header.Get("Host"); host != "" {
		req.Host = host
	}

	return req, nil
}

// Send performs the call. Transport errors are returned as they are; a
// non-2xx status becomes a *StatusError. The caller closes the body.
func (r *Request) Send(ctx context.Context) (*http.Response, error) {
	req, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{Method: r.method, URL: r.url, Code: resp.StatusCode}
	}

	return resp, nil
}

// String returns the response body as text.
func (r *Request) String(ctx context.Context) (string, error) {
	resp, err := r.Send(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	return string(data), err
}

// HTML parses the response as a document. The document URL is set to the
// request URL so relative links can be resolved.
func (r *Request) HTML(ctx context.Context) (*goquery.Document, error) {
	resp, err := r.Send(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// DecodeJSON unmarshals the response body into v.
func (r *Request) DecodeJSON(ctx context.Context, v any) error {
	resp, err := r.Send(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := JSON.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.url, err)
	}

	return nil
}

// ParseHTML builds a document from an inline fragment, resolving relative
// links against base.
func ParseHTML(fragment, base string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	if u, err := url.Parse(base); err == nil {
		doc.Url = u
	}
	return doc, nil
}
