package logger

import (
	"bytes"
	"encoding/base64"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"
)

// MaxBodyLogged caps how much of a request or response body is captured.
const MaxBodyLogged = 1 << 20

// binarySample is how many bytes of a non-text body are kept.
const binarySample = 256

var loggedHeaders = map[string]bool{
	"content-type":   true,
	"content-length": true,
	"user-agent":     true,
	"x-trace-id":     true,
	"traceparent":    true,
	"authorization":  true,
	"cookie":         true,
	"set-cookie":     true,
}

// CaptureBody reads r.Body up to MaxBodyLogged bytes and puts a replayable
// copy back so the handler still sees the full payload.
func CaptureBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyLogged))
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
	return body, nil
}

func HeaderAttrs(hdr http.Header) []slog.Attr {
	return multiMapAttrs("http.header", hdr, loggedHeaders)
}

func QueryAttrs(q url.Values) []slog.Attr {
	return multiMapAttrs("http.query", q, nil)
}

// DecodeBody turns a payload into http.body.* attributes according to its
// content type.
func DecodeBody(contentType string, body []byte) ([]slog.Attr, error) {
	if len(body) == 0 {
		return nil, nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/json":
		return jsonAttrs("http.body", body), nil
	case "application/x-www-form-urlencoded":
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		return multiMapAttrs("http.body", form, nil), nil
	default:
		return binaryAttrs(body), nil
	}
}

func binaryAttrs(b []byte) []slog.Attr {
	if len(b) <= binarySample {
		return []slog.Attr{slog.String("http.body.base64", base64.StdEncoding.EncodeToString(b))}
	}
	return []slog.Attr{
		slog.Int("http.body.size_bytes", len(b)),
		slog.String("http.body.sample_base64", base64.StdEncoding.EncodeToString(b[:binarySample])),
	}
}

func exchangeAttrs(r *http.Request, direction string) []slog.Attr {
	return []slog.Attr{
		slog.String("http.direction", direction),
		slog.String("http.remote_addr", r.RemoteAddr),
		slog.String("http.method", r.Method),
		slog.String("http.path", r.URL.Path),
	}
}

func appendBody(attrs []slog.Attr, contentType string, body []byte) []slog.Attr {
	if len(body) == 0 {
		return attrs
	}
	bodyAttrs, err := DecodeBody(contentType, body)
	if err != nil {
		return append(attrs, slog.String("http.body.error", err.Error()))
	}
	return append(attrs, bodyAttrs...)
}

// LogHTTPRequest describes an incoming request. The body stays readable.
func LogHTTPRequest(r *http.Request, direction string) []slog.Attr {
	attrs := exchangeAttrs(r, direction)
	attrs = append(attrs, HeaderAttrs(r.Header)...)
	attrs = append(attrs, QueryAttrs(r.URL.Query())...)

	body, err := CaptureBody(r)
	if err != nil {
		return append(attrs, slog.String("http.body.error", err.Error()))
	}
	return appendBody(attrs, r.Header.Get("Content-Type"), body)
}

// LogHTTPResponse describes the response written for req.
func LogHTTPResponse(req *http.Request, header http.Header, status int, body []byte, duration time.Duration, direction string) []slog.Attr {
	attrs := exchangeAttrs(req, direction)
	attrs = append(attrs,
		slog.Int("http.status", status),
		slog.Int64("duration_ms", duration.Milliseconds()),
	)
	attrs = append(attrs, HeaderAttrs(header)...)
	return appendBody(attrs, header.Get("Content-Type"), body)
}
