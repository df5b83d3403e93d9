package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))

	generated := RequestIDFromContext(WithRequestID(context.Background(), ""))
	assert.Len(t, generated, 36)

	assert.Empty(t, RequestIDFromContext(context.Background()))
}
