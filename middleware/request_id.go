package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pmb-ti/accountrenewal/util"
)

// RequestID propagates the X-Request-ID header, generating one when the
// client sent none, and stores it on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := util.WithRequestID(c.Request.Context(), c.GetHeader(util.RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(util.RequestIDHeader, util.RequestIDFromContext(ctx))
		c.Next()
	}
}
