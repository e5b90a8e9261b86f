package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTask(t *testing.T) {
	t.Run("WaitReturnsResult", func(t *testing.T) {
		tk := Go(t.Context(), func(context.Context) (int, error) {
			return 42, nil
		})
		v, err := tk.Wait(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("WaitReturnsError", func(t *testing.T) {
		errTest := errors.New("test error")
		tk := Go(t.Context(), func(context.Context) (int, error) {
			return 0, errTest
		})
		_, err := tk.Wait(t.Context())
		assert.ErrorIs(t, err, errTest)
	})

	t.Run("CompletesAfterCallerCancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		release := make(chan struct{})
		tk := Go(ctx, func(ctx context.Context) (string, error) {
			<-release
			return "done", ctx.Err()
		})

		cancel()
		_, err := tk.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		close(release)
		v, err := tk.Wait(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "done", v)
	})

	t.Run("ResultBeforeAndAfter", func(t *testing.T) {
		tk := New[int]()
		_, err := tk.Result()
		assert.ErrorIs(t, err, ErrPending)

		tk.Resolve(7, nil)
		tk.Resolve(8, errors.New("ignored"))

		v, err := tk.Result()
		require.NoError(t, err)
		assert.Equal(t, 7, v)

		select {
		case <-tk.Done():
		case <-time.After(time.Second):
			t.Fatal("done channel is not closed")
		}
	})
}
