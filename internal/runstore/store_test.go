package runstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	run := s.Put(KindOptimize, map[string]int{"nodes": 7})
	require.NotEmpty(t, run.ID)
	assert.Equal(t, KindOptimize, run.Kind)

	got, ok := s.Get(run.ID)
	require.True(t, ok)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, map[string]int{"nodes": 7}, got.Result)

	_, ok = s.Get("no-such-run")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	s := New(time.Nanosecond)
	defer s.Close()

	run := s.Put(KindSelect, "payload")
	time.Sleep(time.Millisecond)

	_, ok := s.Get(run.ID)
	assert.False(t, ok)
}

func TestDistinctIDs(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	a := s.Put(KindSweep, nil)
	b := s.Put(KindSweep, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Len())
}

func TestCloseIdempotent(t *testing.T) {
	s := New(time.Minute)
	s.Close()
	s.Close()
}
