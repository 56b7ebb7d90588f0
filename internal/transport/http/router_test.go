package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"fotogate/internal/photo/handler"
	"fotogate/internal/photo/service"
	"fotogate/internal/photo/store/memory"
	"fotogate/internal/watermark"
	"fotogate/pkg/testutil"
)

func newTestRouter(storeHealth func(ctx context.Context) error) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(memory.NewSeeded(), watermark.New(watermark.DefaultConfig()))
	return NewRouter(Deps{
		Logger:      logger,
		Photo:       handler.New(svc, logger),
		StoreHealth: storeHealth,
	})
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(nil)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}](t, rr)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "operational", resp.Components["store"])
	assert.Equal(t, "operational", resp.Components["encryption"])
}

func TestHealthzDegraded(t *testing.T) {
	r := newTestRouter(func(context.Context) error { return errors.New("connection refused") })

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	resp := testutil.UnmarshalResponse[struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}](t, rr)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Components["store"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/metrics"))

	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestRequestIDEchoed(t *testing.T) {
	r := newTestRouter(nil)

	req := testutil.NewRequest(t, http.MethodGet, "/healthz")
	req.Header.Set("X-Request-Id", "trace-me-123")
	rr := testutil.DoRequest(r, req)

	assert.Equal(t, "trace-me-123", rr.Header().Get("X-Request-Id"))
}

func TestRequestIDMinted(t *testing.T) {
	r := newTestRouter(nil)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestContentTypeRejected(t *testing.T) {
	r := newTestRouter(nil)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/v1/photo", "{}")
	req.Header.Set("Content-Type", "text/plain")
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestContentTypeParameterizedVariantsAccepted(t *testing.T) {
	r := newTestRouter(nil)

	for _, ct := range []string{
		"application/json",
		"application/json; charset=utf-8",
		"application/json;charset=utf-8",
		"application/JSON",
	} {
		t.Run(ct, func(t *testing.T) {
			// Empty body: passing the guard means reaching the handler's
			// field validation, not the content-type rejection.
			req := testutil.NewRequestWithBody(t, http.MethodPost, "/v1/photo", "{}")
			req.Header.Set("Content-Type", ct)
			rr := testutil.DoRequest(r, req)

			testutil.AssertStatus(t, rr, http.StatusBadRequest)
			errResp := testutil.UnmarshalErrorResponse(t, rr)
			assert.Equal(t, "national_id is required", errResp["error_description"])
		})
	}
}

func TestDiscloseRouteWired(t *testing.T) {
	r := newTestRouter(nil)

	// Body fails transport validation but proves the route is mounted.
	req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/photo", map[string]any{})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}
