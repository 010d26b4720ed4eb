package control

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardDo(t *testing.T) {
	t.Parallel()

	t.Run("disabled while running and enabled after", func(t *testing.T) {
		t.Parallel()
		g := NewGuard("predict")
		require.False(t, g.Disabled())

		err := g.Do(context.Background(), func(context.Context) error {
			assert.True(t, g.Disabled())
			return nil
		})
		require.NoError(t, err)
		assert.False(t, g.Disabled())
	})

	t.Run("failure re-enables the control", func(t *testing.T) {
		t.Parallel()
		g := NewGuard("predict")
		boom := errors.New("network down")

		err := g.Do(context.Background(), func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.False(t, g.Disabled())
	})

	t.Run("second trigger while in flight is rejected", func(t *testing.T) {
		t.Parallel()
		g := NewGuard("refresh-map")
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)

		go func() {
			done <- g.Do(context.Background(), func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()

		<-started
		err := g.Do(context.Background(), func(context.Context) error {
			t.Error("second call must not run")
			return nil
		})
		assert.ErrorIs(t, err, ErrBusy)

		close(release)
		require.NoError(t, <-done)
		assert.False(t, g.Disabled())
	})
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	s := NewSet()
	require.Len(t, s.All(), 4)
	for _, g := range s.All() {
		assert.False(t, g.Disabled(), g.Name())
	}
	assert.Equal(t, "predict", s.Predict.Name())
}
