package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := NotFoundf("creature %s not found", "abc").WithMeta("creature_id", "abc")
	wrapped := Wrap(base, "load creature")

	assert.Equal(t, CodeNotFound, wrapped.Code)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "load creature: creature abc not found", wrapped.Error())
	assert.Equal(t, "abc", wrapped.Meta["creature_id"])

	// meta is copied, not shared
	wrapped.WithMeta("extra", 1)
	_, shared := base.Meta["extra"]
	assert.False(t, shared)
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), "save")
	assert.Equal(t, CodeUnknown, wrapped.Code)
	assert.Equal(t, CodeUnknown, GetCode(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WrapWithCode(nil, CodeInternal, "nothing"))
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidInput("reader is nil"))
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
}

func TestWrapWithCode(t *testing.T) {
	err := WrapWithCode(fmt.Errorf("dial tcp: refused"), CodeUnavailable, "redis get")
	assert.True(t, Is(err, CodeUnavailable))
	assert.Equal(t, "redis get: dial tcp: refused", err.Error())
}
