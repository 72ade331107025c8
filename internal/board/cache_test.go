package board_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/board"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func TestCache_ReplaceIsWholesale(t *testing.T) {
	c := board.NewCache()
	assert.False(t, c.Loaded())

	c.Replace([]service.Task{testutil.NewTask("a", "A"), testutil.NewTask("b", "B")})
	c.Replace([]service.Task{testutil.NewTask("c", "C")})

	assert.True(t, c.Loaded())
	require.Len(t, c.All(), 1)
	_, err := c.FindByID("a")
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestCache_AllReturnsCopy(t *testing.T) {
	c := board.NewCache()
	c.Replace([]service.Task{testutil.NewTask("a", "A")})

	got := c.All()
	got[0].Title = "changed"

	task, err := c.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, "A", task.Title)
}

func TestCache_Resolve(t *testing.T) {
	c := board.NewCache()
	c.Replace([]service.Task{
		testutil.NewTask("abc123", "One"),
		testutil.NewTask("abd456", "Two"),
		testutil.NewTask("ab", "Three"),
	})

	t.Run("exact id wins over prefix", func(t *testing.T) {
		task, err := c.Resolve("ab")
		require.NoError(t, err)
		assert.Equal(t, "Three", task.Title)
	})

	t.Run("unique prefix", func(t *testing.T) {
		task, err := c.Resolve("abd")
		require.NoError(t, err)
		assert.Equal(t, "abd456", task.ID)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := c.Resolve("a")
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "ambiguous task reference: a matches 3 tasks", verr.Message)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Resolve("zzz")
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
		assert.EqualError(t, err, "task not found: zzz")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := c.Resolve("  ")
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestEngine_ResolvePosition(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(testutil.NewTask("old", "Oldest"))
	svc.AddTask(testutil.NewTask("new", "Newest"))
	engine := board.New(svc, board.Options{})
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	task, err := engine.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "new", task.ID, "positions follow the rendered order")

	task, err = engine.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, "old", task.ID)

	_, err = engine.Resolve("3")
	assert.EqualError(t, err, "task number out of range: 3")

	task, err = engine.Resolve("ol")
	require.NoError(t, err)
	assert.Equal(t, "Oldest", task.Title)
}
