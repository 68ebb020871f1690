package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

type errorKey struct{}

func withError(ctx context.Context, err error) context.Context {
	if err == nil {
		return ctx
	}

	return context.WithValue(ctx, errorKey{}, err)
}

// Error returns the handler error of this request, if any. Only closers see
// a non-nil value.
func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{Code: int64(errx.Code), Error: errx.Message}
	}

	return response{Code: int64(errorx.Unknown.Code), Error: errorx.Unknown.Message}
}

func writeResponse(ctx context.Context, w http.ResponseWriter, data any, err error) {
	resp := response{Code: 0, Data: data}
	if err != nil {
		resp = newErrorResponse(err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
