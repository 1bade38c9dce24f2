package errors_test

import (
	"errors"
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.Unsupportedf("no threshold for spell level %d", 12).
		WithMeta("spell_level", 12)

	wrapped := dnderr.Wrap(base, "resolve threshold")

	require.NotNil(t, wrapped)
	assert.Equal(t, dnderr.CodeUnsupported, wrapped.Code)
	assert.True(t, dnderr.IsUnsupported(wrapped))
	assert.Equal(t, 12, wrapped.Meta["spell_level"])
	assert.Equal(t, "resolve threshold: no threshold for spell level 12", wrapped.Error())

	// meta is copied, not shared
	wrapped.WithMeta("caster_id", "c1")
	assert.NotContains(t, base.Meta, "caster_id")
}

func TestWrap_ForeignErrorIsUnknown(t *testing.T) {
	cause := errors.New("connection refused")

	wrapped := dnderr.Wrapf(cause, "failed to load caster %s", "c1")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
	assert.Nil(t, dnderr.Wrapf(nil, "nothing %d", 1))
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("apply update: %w", dnderr.FailedPreconditionf("exhaustion %d exceeds %d", 7, 6))

	assert.True(t, dnderr.IsFailedPrecondition(err))
	assert.False(t, dnderr.IsNotFound(err))
	assert.Equal(t, dnderr.CodeFailedPrecondition, dnderr.GetCode(err))
}

func TestResourceExhausted_KeptThroughWrap(t *testing.T) {
	err := dnderr.Wrap(dnderr.ResourceExhaustedf("exhaustion %d over ceiling %d", 6, 5), "apply desperation")

	assert.True(t, dnderr.IsResourceExhausted(err))
	assert.False(t, dnderr.IsFailedPrecondition(err))
}
