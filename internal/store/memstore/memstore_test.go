package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/taskboard/internal/store"
	"github.com/idilsaglam/taskboard/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Storage { return New() })
}

func TestInjectedErrors(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	s.SetErr = boom
	assert.ErrorIs(t, s.Set(context.Background(), "k", []byte(`1`)), boom)
	assert.Equal(t, 0, s.Len())
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte(`"ab"`))
	v, _ := s.Get(ctx, "k")
	v[1] = 'z'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, `"ab"`, string(again))
}
