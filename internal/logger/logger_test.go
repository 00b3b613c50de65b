package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()), "missing logger falls back to nop")

	core, logs := observer.New(zap.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	FromContext(ctx).Info("loaded", zap.String("pack", "spells"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "spells", logs.All()[0].ContextMap()["pack"])
}

func TestNew(t *testing.T) {
	l, closer, err := New(Options{Level: "debug", File: filepath.Join(t.TempDir(), "compendium.log")})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
	assert.NoError(t, closer.Close())

	_, _, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}
