package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimdealz/dealscout/pkg/domain"
	"github.com/grimdealz/dealscout/server/mocks"
)

func testServer(t *testing.T, pipeline StatusProvider) *Server {
	t.Helper()
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return "127.0.0.1:0", 5 * time.Second },
	}
	return New(cfg, pipeline, "test-1.0", false)
}

func emptyStatus() *mocks.StatusProviderMock {
	return &mocks.StatusProviderMock{
		LastPassFunc: func() (domain.PassStats, bool) { return domain.PassStats{}, false },
		CursorsFunc:  func() *domain.PipelineState { return domain.NewPipelineState() },
	}
}

func TestServer_StatusHandler(t *testing.T) {
	t.Run("no pass completed yet", func(t *testing.T) {
		s := testServer(t, emptyStatus())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
		assert.Equal(t, "test-1.0", resp["version"])
		assert.NotContains(t, resp, "last_pass")
	})

	t.Run("with completed pass", func(t *testing.T) {
		status := emptyStatus()
		status.LastPassFunc = func() (domain.PassStats, bool) {
			return domain.PassStats{
				StartedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				Duration:  1500 * time.Millisecond,
				Sources: []domain.SourceStats{
					{Source: "Warhammer40k", Fetched: 50, New: 5, Filtered: 3, Classified: 3, Matched: 2, Notified: 2},
					{Source: "minipainting", Skipped: true, SkipReason: "fetch posts: auth failed"},
				},
			}, true
		}
		s := testServer(t, status)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status   string   `json:"status"`
			LastPass passInfo `json:"last_pass"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "1.5s", resp.LastPass.Duration)
		assert.Equal(t, 50, resp.LastPass.Fetched)
		assert.Equal(t, 2, resp.LastPass.Notified)
		assert.Equal(t, 1, resp.LastPass.Skipped)
		require.Len(t, resp.LastPass.Sources, 2)
		assert.Equal(t, "Warhammer40k", resp.LastPass.Sources[0].Source)
	})
}

func TestServer_CursorsHandler(t *testing.T) {
	status := emptyStatus()
	status.CursorsFunc = func() *domain.PipelineState {
		st := domain.NewPipelineState()
		st.SetCursor("Warhammer40k", domain.SourceCursor{
			LastPostID:    "t3_abc",
			LastCommentID: "t1_def",
			LastRunAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		})
		return st
	}
	s := testServer(t, status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cursors", http.NoBody)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PipelineState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "t3_abc", resp.Cursor("Warhammer40k").LastPostID)
	assert.Equal(t, "t1_def", resp.Cursor("Warhammer40k").LastCommentID)
}

func TestServer_Middleware(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		s := testServer(t, emptyStatus())

		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("app info header", func(t *testing.T) {
		s := testServer(t, emptyStatus())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, "dealscout", rec.Header().Get("App-Name"))
		assert.Equal(t, "test-1.0", rec.Header().Get("App-Version"))
	})

	t.Run("unknown route", func(t *testing.T) {
		s := testServer(t, emptyStatus())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", http.NoBody)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_RunAndShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return addr, 5 * time.Second },
	}
	s := New(cfg, emptyStatus(), "test-1.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// wait for the server to accept connections
	var resp *http.Response
	require.Eventually(t, func() bool {
		var reqErr error
		resp, reqErr = http.Get(fmt.Sprintf("http://%s/ping", addr)) //nolint:noctx // test helper
		return reqErr == nil
	}, 2*time.Second, 20*time.Millisecond)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), errors.New("boom"), http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "boom", resp["error"])
}
