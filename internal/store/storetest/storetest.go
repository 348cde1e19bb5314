// Package storetest holds the behaviour every store.Storage backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/taskboard/internal/store"
)

// Run exercises a fresh backend returned by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) store.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := open(t)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "taskBoardData", []byte(`{"tasks":[],"activityLog":[]}`)))
		got, err := s.Get(ctx, "taskBoardData")
		require.NoError(t, err)
		assert.JSONEq(t, `{"tasks":[],"activityLog":[]}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "auth", []byte(`{"email":"a@b.c"}`)))
		require.NoError(t, s.Set(ctx, "auth", []byte(`{"email":"x@y.z","rememberMe":true}`)))
		got, err := s.Get(ctx, "auth")
		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"x@y.z","rememberMe":true}`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Set(ctx, "a", []byte(`1`)))
		require.NoError(t, s.Set(ctx, "b", []byte(`2`)))
		require.NoError(t, s.Remove(ctx, "a"))

		_, err := s.Get(ctx, "a")
		assert.ErrorIs(t, err, store.ErrNotFound)
		got, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "2", string(got))
	})

	t.Run("remove missing key", func(t *testing.T) {
		s := open(t)
		assert.NoError(t, s.Remove(ctx, "never-set"))
	})
}
