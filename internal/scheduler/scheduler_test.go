package scheduler

import (
	"context"
	"testing"
	"time"

	"DiningAPI/internal/hours"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	store *hours.Store
	calls int
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) (*hours.Table, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.store.Reload(ctx)
}

func newTestScheduler(t *testing.T, spec string) (*ReloadScheduler, *countingReloader, *test.Hook) {
	t.Helper()
	store, err := hours.NewStore(context.Background(), hours.EmbeddedSource{})
	require.NoError(t, err)
	engine := hours.NewEngine(store, hours.WithLocation(time.UTC))
	log, hook := test.NewNullLogger()
	reloader := &countingReloader{store: store}
	return NewReloadScheduler(reloader, engine, log, spec), reloader, hook
}

func TestRunOnce(t *testing.T) {
	s, reloader, hook := newTestScheduler(t, "@hourly")

	s.RunOnce(context.Background())
	assert.Equal(t, 1, reloader.calls)

	var halls []interface{}
	for _, e := range hook.AllEntries() {
		if e.Message == "hall status" {
			halls = append(halls, e.Data["hall"])
		}
	}
	assert.Equal(t, []interface{}{hours.Cooper, hours.Lakeside, hours.Pathfinder}, halls)
}

func TestRunOnceFailure(t *testing.T) {
	s, reloader, hook := newTestScheduler(t, "@hourly")
	reloader.err = assert.AnError

	s.RunOnce(context.Background())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestStartStop(t *testing.T) {
	t.Run("Valid Spec", func(t *testing.T) {
		s, _, _ := newTestScheduler(t, "0 5 * * *")
		require.NoError(t, s.Start(context.Background()))
		s.Stop()
	})

	t.Run("Disabled", func(t *testing.T) {
		s, _, _ := newTestScheduler(t, "")
		require.NoError(t, s.Start(context.Background()))
		s.Stop()
	})

	t.Run("Invalid Spec", func(t *testing.T) {
		s, _, _ := newTestScheduler(t, "every tuesday")
		assert.Error(t, s.Start(context.Background()))
	})
}
