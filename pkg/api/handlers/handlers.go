// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"

	"github.com/lexroute/lexroute/pkg/api/middleware"
)

func getRequestID(ctx context.Context) string {
	return middleware.GetRequestID(ctx)
}
