package board_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/board"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func newEngine(t *testing.T, svc *testutil.FakeService) (*board.Engine, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{}
	return board.New(svc, board.Options{Surface: surface}), surface
}

func seed(svc *testutil.FakeService) {
	work := testutil.NewTask("a", "Write report")
	work.Category = service.CategoryWork
	work.DueDate = testutil.Due("2024-01-10")

	gym := testutil.NewTask("b", "Gym")
	gym.Category = service.CategoryHealth
	gym.Priority = service.PriorityHigh

	bills := testutil.NewTask("c", "Pay bills")
	bills.Category = service.CategoryWork
	bills.Priority = service.PriorityLow

	svc.AddTask(work)
	svc.AddTask(gym)
	svc.AddTask(bills)
}

func TestRefresh_DefaultCriteriaUsesCacheAndDefaultSort(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)

	view, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ListAll", "Sort"}, svc.Ops())
	assert.Equal(t, []string{"c", "b", "a"}, ids(view), "newest first by default")
	assert.False(t, view.FilterActive)
	assert.False(t, view.SortActive)
	assert.Equal(t, view, surface.lastView())

	sortCall := svc.Calls()[1]
	assert.Equal(t, []string{"a", "b", "c"}, sortCall.IDs)
	assert.Equal(t, service.DefaultSort(), sortCall.Sort)
}

func TestReconcile_DefaultFilterNeverCallsFilterEndpoint(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, _ := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	svc.ResetCalls()

	sorts := []service.Sort{
		service.DefaultSort(),
		{Key: service.SortByTitle, Ascending: true},
		{Key: service.SortByPriority},
	}
	for _, s := range sorts {
		require.NoError(t, engine.Dispatch(context.Background(), board.ApplySort{Sort: s}))
	}
	require.NoError(t, engine.Dispatch(context.Background(), board.ApplyFilter{Filter: service.Filter{Keyword: "   "}}))

	assert.NotContains(t, svc.Ops(), "ListFiltered")
	assert.NotContains(t, svc.Ops(), "ListAll")
}

func TestReconcile_ActiveFilterSortsOnlyFilteredIDs(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, _ := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	svc.ResetCalls()

	filter := service.Filter{Category: service.CategoryWork}
	require.NoError(t, engine.Dispatch(context.Background(), board.ApplyFilter{Filter: filter}))

	calls := svc.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "ListFiltered", calls[0].Op)
	assert.Equal(t, filter, calls[0].Filter)
	assert.Equal(t, "Sort", calls[1].Op)
	assert.ElementsMatch(t, []string{"a", "c"}, calls[1].IDs)

	view := engine.View()
	assert.True(t, view.FilterActive)
	assert.Equal(t, []string{"c", "a"}, ids(view))
}

func TestReconcile_EmptyCandidatesSkipSort(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	svc.ResetCalls()

	require.NoError(t, engine.Dispatch(context.Background(), board.ApplyFilter{Filter: service.Filter{Keyword: "nothing matches"}}))

	assert.Equal(t, []string{"ListFiltered"}, svc.Ops())
	assert.Empty(t, surface.lastView().Tasks)
	assert.True(t, surface.lastView().FilterActive)
}

func TestReconcile_EmptyCacheSkipsSort(t *testing.T) {
	svc := testutil.NewFakeService()
	engine, surface := newEngine(t, svc)

	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ListAll"}, svc.Ops())
	assert.Empty(t, surface.lastView().Tasks)
	assert.Len(t, surface.views, 1)
}

func TestReconcile_SortIndicator(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, _ := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, engine.Dispatch(context.Background(), board.ApplySort{Sort: service.Sort{Key: service.SortByTitle, Ascending: true}}))
	view := engine.View()
	assert.True(t, view.SortActive)
	assert.False(t, view.FilterActive)
	assert.Equal(t, []string{"b", "c", "a"}, ids(view))

	require.NoError(t, engine.Dispatch(context.Background(), board.ResetCriteria{}))
	view = engine.View()
	assert.False(t, view.SortActive)
	assert.Equal(t, service.DefaultCriteria(), engine.Criteria().Criteria())
}

func TestReconcile_FailureFallsBackToCache(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	svc.ListFilteredErr = &service.RemoteError{Status: 500, Message: "filter exploded"}
	err = engine.Dispatch(context.Background(), board.ApplyFilter{Filter: service.Filter{Priority: service.PriorityHigh}})
	require.Error(t, err)

	view := surface.lastView()
	assert.True(t, view.Stale)
	assert.Equal(t, []string{"a", "b", "c"}, ids(view), "cached tasks, unfiltered, in server order")
	assert.Equal(t, board.Notice{Kind: board.NoticeError, Text: "filter exploded"}, surface.lastNotice())
}

func TestRefresh_SortFailureFallsBack(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	svc.SortErr = &service.NetworkError{Err: errors.New("connection reset")}
	engine, surface := newEngine(t, svc)

	_, err := engine.Refresh(context.Background())
	var netErr *service.NetworkError
	require.ErrorAs(t, err, &netErr)

	view := surface.lastView()
	assert.True(t, view.Stale)
	assert.Len(t, view.Tasks, 3)
	assert.Equal(t, board.NoticeError, surface.lastNotice().Kind)
}

func TestRefresh_FetchFailureKeepsStaleCache(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	svc.ListAllErr = &service.RemoteError{Status: 503, Message: service.GenericFailure}
	_, err = engine.Refresh(context.Background())
	require.Error(t, err)

	assert.Len(t, engine.Cache().All(), 3)
	assert.Len(t, surface.lastView().Tasks, 3)
	assert.True(t, surface.lastView().Stale)
}

func TestRefresh_AuthFailureStopsCycle(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	svc.ListAllErr = &service.AuthError{Reason: "session expired"}
	engine, surface := newEngine(t, svc)

	_, err := engine.Refresh(context.Background())
	assert.True(t, service.IsAuth(err))
	assert.Equal(t, []string{"ListAll"}, svc.Ops(), "no further calls after a 401")
	assert.Empty(t, surface.views)
	assert.Empty(t, surface.notices, "auth failures are never shown inline")
}

func TestReconcile_StaleResultDiscarded(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	// While the first reconciliation waits on its sort call, a second one
	// starts and finishes. The first must not overwrite the newer render.
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	svc.OnCall = func(c testutil.Call) {
		if c.Op != "Sort" {
			return
		}
		block := false
		once.Do(func() { block = true })
		if block {
			close(entered)
			<-release
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = engine.Dispatch(context.Background(), board.ApplySort{Sort: service.Sort{Key: service.SortByTitle, Ascending: true}})
	}()
	<-entered

	require.NoError(t, engine.Dispatch(context.Background(), board.ApplySort{Sort: service.Sort{Key: service.SortByPriority, Ascending: true}}))
	newest := surface.lastView()

	close(release)
	<-done

	assert.Equal(t, newest, surface.lastView())
	assert.Equal(t, newest, engine.View())
}

func TestRefresh_NewerCacheWinsOverInterleavedReconcile(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, surface := newEngine(t, svc)
	_, err := engine.Refresh(context.Background())
	require.NoError(t, err)

	svc.AddTask(testutil.NewTask("d", "Call dentist"))

	// The reload waits on its fetch while a sort reconciles from the old cache.
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	svc.OnCall = func(c testutil.Call) {
		if c.Op != "ListAll" {
			return
		}
		block := false
		once.Do(func() { block = true })
		if block {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- engine.Dispatch(context.Background(), board.Reload{})
	}()
	<-entered

	require.NoError(t, engine.Dispatch(context.Background(), board.ApplySort{Sort: service.Sort{Key: service.SortByTitle, Ascending: true}}))
	assert.Equal(t, []string{"b", "c", "a"}, ids(surface.lastView()))

	close(release)
	require.NoError(t, <-done)

	shown := engine.View()
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(shown))
	assert.False(t, shown.Stale)
	assert.Equal(t, shown, surface.lastView())
}

func TestBeginEdit(t *testing.T) {
	svc := testutil.NewFakeService()
	seed(svc)
	engine, _ := newEngine(t, svc)

	_, err := engine.BeginEdit("a")
	assert.ErrorIs(t, err, service.ErrTaskNotFound, "empty cache")

	_, err = engine.Refresh(context.Background())
	require.NoError(t, err)
	svc.ResetCalls()

	patch, err := engine.BeginEdit("a")
	require.NoError(t, err)
	assert.Equal(t, "Write report", patch.Title)
	assert.Equal(t, "2024-01-10", patch.DueDate.Date())
	assert.Empty(t, svc.Ops(), "edit prefill comes from the cache")
}
