package middleware

import (
	"context"

	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/router"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// Authenticate trusts the identity established upstream and only asserts a
// user id arrived with the request.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID := xcontext.HTTPRequest(ctx).Header.Get("X-User-ID")
		if userID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}
