package response // import "github.com/bookverse/bookverse/http/response"

import (
	"net/http"

	"github.com/bookverse/bookverse/log"
	"go.uber.org/zap"
)

// Builder generates HTTP responses with sane security headers.
type Builder struct {
	w          http.ResponseWriter
	r          *http.Request
	statusCode int
	headers    map[string]string
	body       interface{}
}

// New creates a new response builder.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{w: w, r: r, statusCode: http.StatusOK, headers: make(map[string]string)}
}

// WithStatus uses the given status code to build the response.
func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

// WithHeader adds the given HTTP header to the response.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

// WithBody uses the given body to build the response.
func (b *Builder) WithBody(body interface{}) *Builder {
	b.body = body
	return b
}

// Write generates the HTTP response.
func (b *Builder) Write() {
	b.headers["X-Content-Type-Options"] = "nosniff"
	b.headers["X-Frame-Options"] = "DENY"

	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}

	b.w.WriteHeader(b.statusCode)

	if b.body == nil {
		return
	}

	switch v := b.body.(type) {
	case []byte:
		b.w.Write(v)
	case string:
		b.w.Write([]byte(v))
	default:
		log.Error("Unsupported response body type", zap.Any("body", b.body))
	}
}
