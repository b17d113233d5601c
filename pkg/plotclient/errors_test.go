package plotclient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   string
		detail string
	}{
		{"echo error", 422, `{"error":"coordinates must contain at least 3 distinct points"}`, "validation", "coordinates must contain at least 3 distinct points"},
		{"detail string", 400, `{"detail":"Invalid geometry"}`, "validation", "Invalid geometry"},
		{"detail list", 422, `{"detail":[{"msg":"field required"},{"msg":"bad ring"}]}`, "validation", "field required; bad ring"},
		{"message", 403, `{"message":"forbidden plot"}`, "auth", "forbidden plot"},
		{"unauthorized", 401, `{"error":"invalid or expired token"}`, "auth", "invalid or expired token"},
		{"not found", 404, `{"error":"not found"}`, "not_found", "not found"},
		{"server error", 500, `oops`, "network", "oops"},
		{"empty body", 502, ``, "network", "Bad Gateway"},
		{"teapot", 418, `{}`, "network", "I'm a teapot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.kind, Kind(err))
			assert.Equal(t, tt.detail, err.Detail())
		})
	}
}

func TestKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("delete plot: %w", &NotFoundError{Msg: "gone"})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuth(err))
	assert.Equal(t, "not_found", Kind(err))
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "unknown", Kind(errors.New("plain")))

	re, ok := AsRepositoryError(err)
	assert.True(t, ok)
	assert.Equal(t, "gone", re.Detail())
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Msg: "request failed", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
