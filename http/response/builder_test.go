package response // import "github.com/bookverse/bookverse/http/response"

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/errors"
	"github.com/bookverse/bookverse/log"
)

func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestResponseHasCommonHeaders(t *testing.T) {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}

	for header, expected := range headers {
		actual := resp.Header.Get(header)
		if actual != expected {
			t.Fatalf(`Unexpected header value, got %q instead of %q`, actual, expected)
		}
	}
}

func TestBuildOkResponse(t *testing.T) {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).WithBody("Some body").Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf(`Unexpected status code, got %d instead of %d`, resp.StatusCode, http.StatusOK)
	}

	expectedBody := `Some body`
	actualBody := w.Body.String()
	if actualBody != expectedBody {
		t.Fatalf(`Unexpected body, got %q instead of %q`, actualBody, expectedBody)
	}
}

func TestDomainErrorMapsCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errors.NotFound("book not found"), http.StatusNotFound},
		{"forbidden", errors.Forbidden("not the review owner"), http.StatusForbidden},
		{"validation", errors.Validation("rating must be between 1 and 5"), http.StatusBadRequest},
		{"conflict", errors.Conflict("title already exists"), http.StatusConflict},
		{"plain error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := http.NewRequest("GET", "/", nil)
			if err != nil {
				t.Fatal(err)
			}

			w := httptest.NewRecorder()
			DomainError(w, r, tc.err)

			if w.Result().StatusCode != tc.wantStatus {
				t.Fatalf(`Unexpected status code, got %d instead of %d`, w.Result().StatusCode, tc.wantStatus)
			}
		})
	}
}
