package thicket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateParallelMatchesSequential(t *testing.T) {
	sequential := buildPile(t)
	for i := 0; i < 240; i++ {
		sequential.Step(sequential.Clock().Step)
		sequential.FlushDestroyed()
	}

	scenes := []*Scene{buildPile(t), buildPile(t), buildPile(t), buildPile(t)}
	require.NoError(t, SimulateParallel(context.Background(), scenes, 240))

	for i, s := range scenes {
		assert.Equal(t, uint64(240), s.Ticks(), "scene %d", i)
		assert.Equal(t, sequential.StateHash(), s.StateHash(), "scene %d", i)
	}
}

func TestSimulateParallelRunsCallbacksAndFlushes(t *testing.T) {
	s := buildPile(t)
	id, _ := s.Find("b")
	updates := 0
	s.Node(id).OnUpdate = func(float64) {
		updates++
		if updates == 10 {
			s.Destroy(id)
		}
	}

	require.NoError(t, SimulateParallel(context.Background(), []*Scene{s}, 20))
	assert.Equal(t, 10, updates)
	assert.Nil(t, s.Node(id))
}

func TestSimulateParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := buildPile(t)
	err := SimulateParallel(ctx, []*Scene{s}, 100)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Ticks())
}
