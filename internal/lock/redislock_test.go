package lock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/lock"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestWithLockSerialises(t *testing.T) {
	_, client := newClient(t)
	locker := lock.Locker{R: client, RetryBackoff: 5 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		order  []string
		wg     sync.WaitGroup
		inside = make(chan struct{})
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		require.NoError(t, locker.WithLock(ctx, "seed", time.Second, func(context.Context) error {
			close(inside)
			time.Sleep(30 * time.Millisecond)
			mu.Lock()
			order = append(order, "first")
			mu.Unlock()
			return nil
		}))
	}()
	go func() {
		defer wg.Done()
		<-inside
		require.NoError(t, locker.WithLock(ctx, "seed", time.Second, func(context.Context) error {
			mu.Lock()
			order = append(order, "second")
			mu.Unlock()
			return nil
		}))
	}()
	wg.Wait()
	require.Equal(t, []string{"first", "second"}, order)
}

func TestWithLockReleasesOnError(t *testing.T) {
	mr, client := newClient(t)
	locker := lock.Locker{R: client}
	boom := errors.New("boom")

	err := locker.WithLock(context.Background(), "seed", time.Minute, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	require.False(t, mr.Exists("seed"))
}

func TestWithLockGivesUpAfterWait(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set("seed", "someone-else"))

	locker := lock.Locker{R: client, RetryBackoff: 5 * time.Millisecond, Wait: 40 * time.Millisecond}
	called := false
	err := locker.WithLock(context.Background(), "seed", time.Minute, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, lock.ErrNotAcquired)
	require.False(t, called)

	val, err := mr.Get("seed")
	require.NoError(t, err)
	require.Equal(t, "someone-else", val)
}

func TestWithLockRequiresClient(t *testing.T) {
	err := lock.Locker{}.WithLock(context.Background(), "seed", time.Second, func(context.Context) error { return nil })
	require.Error(t, err)
}
