package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingSetAddUpToLimit(t *testing.T) {
	set := NewMappingSet()

	for i := 0; i < MaxMappings; i++ {
		index, err := set.Add(DefaultMapping())
		require.NoError(t, err)
		assert.Equal(t, i, index)
	}

	_, err := set.Add(DefaultMapping())
	assert.ErrorIs(t, err, ErrMappingLimit)
	assert.Equal(t, MaxMappings, set.Len())
}

func TestMappingSetUpdateAndAt(t *testing.T) {
	set := NewMappingSet()
	_, err := set.Add(DefaultMapping())
	require.NoError(t, err)

	edited := Mapping{Lower: BGR{1, 2, 3}, Upper: BGR{4, 5, 6}, Replacement: BGR{7, 8, 9}}
	require.NoError(t, set.Update(0, edited))

	got, err := set.At(0)
	require.NoError(t, err)
	assert.Equal(t, edited, got)

	assert.Error(t, set.Update(1, edited))
	assert.Error(t, set.Update(-1, edited))
}

func TestMappingSetRemoveShiftsPositions(t *testing.T) {
	set := NewMappingSet()
	first := Mapping{Replacement: BGR{1, 0, 0}}
	second := Mapping{Replacement: BGR{2, 0, 0}}
	third := Mapping{Replacement: BGR{3, 0, 0}}
	for _, m := range []Mapping{first, second, third} {
		_, err := set.Add(m)
		require.NoError(t, err)
	}

	require.NoError(t, set.Remove(1))
	assert.Equal(t, 2, set.Len())

	got, err := set.At(1)
	require.NoError(t, err)
	assert.Equal(t, third, got)

	assert.Error(t, set.Remove(2))
}

func TestMappingSetSnapshotIsFrozen(t *testing.T) {
	set := NewMappingSet()
	_, err := set.Add(DefaultMapping())
	require.NoError(t, err)

	snapshot := set.Snapshot()
	require.Len(t, snapshot, 1)

	edited := Mapping{Lower: BGR{1, 1, 1}}
	require.NoError(t, set.Update(0, edited))
	require.NoError(t, set.Remove(0))

	assert.Equal(t, DefaultMapping(), snapshot[0])
}

func TestMappingSetSubscribe(t *testing.T) {
	set := NewMappingSet()

	changes := 0
	set.Subscribe(func() { changes++ })

	_, err := set.Add(DefaultMapping())
	require.NoError(t, err)
	require.NoError(t, set.Update(0, DefaultMapping()))
	require.NoError(t, set.Remove(0))

	assert.Equal(t, 3, changes)
}

func TestMappingSetLimitRejectionDoesNotNotify(t *testing.T) {
	set := NewMappingSet()
	for i := 0; i < MaxMappings; i++ {
		_, err := set.Add(DefaultMapping())
		require.NoError(t, err)
	}

	changes := 0
	set.Subscribe(func() { changes++ })

	_, err := set.Add(DefaultMapping())
	require.ErrorIs(t, err, ErrMappingLimit)
	assert.Zero(t, changes)
}
