package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := ReadWithRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestReadWithRetry_RetriesTransientError(t *testing.T) {
	calls := 0
	err := ReadWithRetry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestReadWithRetry_GivesUpAfterBoundedAttempts(t *testing.T) {
	calls := 0
	err := ReadWithRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("still down")
	})
	require.Error(t, err)
	assert.Equal(t, readRetryAttempts, calls)
}

func TestReadWithRetry_NoRowsIsNotRetried(t *testing.T) {
	calls := 0
	err := ReadWithRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return sql.ErrNoRows
	})
	assert.Equal(t, sql.ErrNoRows, err)
	assert.Equal(t, 1, calls)
}

func TestReadWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ReadWithRetry(ctx, func(ctx context.Context) error {
		return errors.New("transient")
	})
	require.Error(t, err)
}
