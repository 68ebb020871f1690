package router

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/logger"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func newTestRouter() *Router {
	return New(nil, config.Default(), logger.NewLogger(logger.SILENCE))
}

func TestRouterPost(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Greeting: "hello " + req.Name}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/echo",
		strings.NewReader(`{"name": "alice"}`)))

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Greeting string `json:"greeting"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "hello alice", resp.Data.Greeting)
}

func TestRouterGetDecodesQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		require.Equal(t, 3, req.Count)
		return &echoResponse{Greeting: req.Name}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/echo?name=bob&count=3", nil))

	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Zero(t, resp.Code)
	require.JSONEq(t, `{"greeting": "bob"}`, string(resp.Data))
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	POST(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found thing")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/fail", nil))

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found thing", resp.Error)
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	r := newTestRouter()
	POST(r, "/only-post", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/only-post", nil))

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.NotFound), resp.Code)
}

func TestRouterBeforeMiddleware(t *testing.T) {
	r := newTestRouter()

	authed := r.Branch()
	authed.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	POST(authed, "/private", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})

	// The branch's middleware must not leak into the parent.
	POST(r, "/public", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Greeting: "open"}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/private", nil))

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.Unauthenticated), resp.Code)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/public", nil))
	require.Contains(t, w.Body.String(), "open")
}
