package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/queue/mocks"
	"github.com/umputun/yourtube/app/request"
)

func TestPoller_EnqueueAndPollToCompletion(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var mu sync.Mutex
	responses := []queue.Item{
		{Status: enums.QueueStatusProcessing, Progress: 40},
		{Status: enums.QueueStatusProcessing, Progress: 80.5, Title: "server title"},
		{Status: enums.QueueStatusCompleted, Progress: 100},
	}
	api := &mocks.APIMock{
		SubmitQueueFunc: func(_ context.Context, req queue.Request) (queue.Item, error) {
			return queue.Item{ID: "q1", Title: "Some video", CreatedAt: created}, nil
		},
		QueueStatusFunc: func(_ context.Context, id string) (queue.Item, error) {
			mu.Lock()
			defer mu.Unlock()
			res := responses[0]
			if len(responses) > 1 {
				responses = responses[1:]
			}
			res.ID = id
			return res, nil
		},
	}
	sink := newSink()
	handler := &mocks.EventHandlerMock{OnQueueFinishedFunc: func(request.OnQueueFinished) {}}
	p := queue.NewPoller(queue.Params{API: api, Sink: sink, Interval: 10 * time.Millisecond,
		Handlers: []queue.EventHandler{handler}})
	defer p.Close()

	item, err := p.Enqueue(context.Background(), queue.Request{URL: "https://example.com/v", Quality: "720p"})
	require.NoError(t, err)
	assert.Equal(t, enums.QueueStatusQueued, item.Status)
	assert.Equal(t, "720p", item.Quality)
	assert.Equal(t, "https://example.com/v", item.URL)
	assert.Equal(t, []string{"q1"}, p.Active())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx))
	assert.Empty(t, p.Active())

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Some video", items[0].Title, "title is not overwritten by polls")
	assert.Equal(t, created, items[0].CreatedAt)
	assert.Equal(t, "720p", items[0].Quality)
	assert.Equal(t, enums.QueueStatusCompleted, items[0].Status)
	assert.InDelta(t, 100.0, items[0].Progress, 0.001)

	updates := sink.OnQueueItemUpdateCalls()
	require.Len(t, updates, 4)
	assert.Equal(t, enums.QueueStatusQueued, updates[0].Item.Status)
	assert.InDelta(t, 40.0, updates[1].Item.Progress, 0.001)
	assert.InDelta(t, 80.5, updates[2].Item.Progress, 0.001)
	assert.Equal(t, enums.QueueStatusCompleted, updates[3].Item.Status)

	require.Eventually(t, func() bool { return len(handler.OnQueueFinishedCalls()) == 1 }, time.Second, time.Millisecond)
	evt := handler.OnQueueFinishedCalls()[0].Req
	assert.Equal(t, "q1", evt.QueueID)
	assert.Equal(t, "Some video", evt.Title)
	assert.Equal(t, enums.QueueStatusCompleted, evt.Status)

	polls := len(api.QueueStatusCalls())
	time.Sleep(40 * time.Millisecond)
	assert.Len(t, api.QueueStatusCalls(), polls, "no polls after terminal status")
	assert.Empty(t, sink.OnErrorCalls())
}

func TestPoller_FailedStatus(t *testing.T) {
	api := &mocks.APIMock{
		SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
			return queue.Item{ID: "q2", Title: "bad"}, nil
		},
		QueueStatusFunc: func(_ context.Context, id string) (queue.Item, error) {
			return queue.Item{ID: id, Status: enums.QueueStatusFailed, Progress: 12, Error: "unsupported url"}, nil
		},
	}
	sink := newSink()
	handler := &mocks.EventHandlerMock{OnQueueFinishedFunc: func(request.OnQueueFinished) {}}
	p := queue.NewPoller(queue.Params{API: api, Sink: sink, Interval: 5 * time.Millisecond,
		Handlers: []queue.EventHandler{handler}})

	_, err := p.Enqueue(context.Background(), queue.Request{URL: "https://example.com/x"})
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, enums.QueueStatusFailed, items[0].Status)
	assert.Equal(t, "unsupported url", items[0].Error)
	require.Eventually(t, func() bool { return len(handler.OnQueueFinishedCalls()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, enums.QueueStatusFailed, handler.OnQueueFinishedCalls()[0].Req.Status)
}

func TestPoller_EnqueueRejected(t *testing.T) {
	api := &mocks.APIMock{SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
		return queue.Item{}, errors.New("URL is required")
	}}
	sink := newSink()
	p := queue.NewPoller(queue.Params{API: api, Sink: sink})

	_, err := p.Enqueue(context.Background(), queue.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
	assert.Empty(t, p.Items())
	assert.Empty(t, p.Active())
	require.Len(t, sink.OnErrorCalls(), 1)
	assert.Contains(t, sink.OnErrorCalls()[0].Msg, "URL is required")
	assert.Empty(t, sink.OnQueueItemUpdateCalls())
}

func TestPoller_FetchFailureStopsPolling(t *testing.T) {
	api := &mocks.APIMock{
		SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
			return queue.Item{ID: "q3"}, nil
		},
		QueueStatusFunc: func(context.Context, string) (queue.Item, error) {
			return queue.Item{}, errors.New("502 bad gateway")
		},
	}
	sink := newSink()
	handler := &mocks.EventHandlerMock{OnQueueFinishedFunc: func(request.OnQueueFinished) {}}
	p := queue.NewPoller(queue.Params{API: api, Sink: sink, Interval: 5 * time.Millisecond,
		Handlers: []queue.EventHandler{handler}})

	_, err := p.Enqueue(context.Background(), queue.Request{URL: "https://example.com/x"})
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))
	time.Sleep(30 * time.Millisecond)

	assert.Len(t, api.QueueStatusCalls(), 1)
	require.Len(t, sink.OnErrorCalls(), 1)
	assert.Contains(t, sink.OnErrorCalls()[0].Msg, "502 bad gateway")
	assert.Empty(t, handler.OnQueueFinishedCalls())
	require.Len(t, p.Items(), 1, "item stays visible")
	assert.Equal(t, enums.QueueStatusQueued, p.Items()[0].Status)
}

func TestPoller_ManualPoll(t *testing.T) {
	api := &mocks.APIMock{QueueStatusFunc: func(_ context.Context, id string) (queue.Item, error) {
		if id == "missing" {
			return queue.Item{}, errors.New("item not found")
		}
		return queue.Item{ID: id, Status: enums.QueueStatusCompleted, Progress: 130}, nil
	}}
	sink := newSink()
	p := queue.NewPoller(queue.Params{API: api, Sink: sink})

	item, err := p.Poll(context.Background(), "q9")
	require.NoError(t, err)
	assert.Equal(t, enums.QueueStatusCompleted, item.Status)
	assert.InDelta(t, 100.0, item.Progress, 0.001)
	assert.Empty(t, sink.OnQueueItemUpdateCalls(), "unknown items are not displayed")

	_, err = p.Poll(context.Background(), "missing")
	require.ErrorIs(t, err, queue.ErrPollFetchFailed)
	require.Len(t, sink.OnErrorCalls(), 1)
}

func TestPoller_CanceledManualPollKeepsPolling(t *testing.T) {
	api := &mocks.APIMock{
		SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
			return queue.Item{ID: "q1", Title: "First"}, nil
		},
		QueueStatusFunc: func(ctx context.Context, _ string) (queue.Item, error) {
			<-ctx.Done()
			return queue.Item{}, ctx.Err()
		},
	}
	sink := newSink()
	p := queue.NewPoller(queue.Params{API: api, Sink: sink, Interval: time.Hour})
	defer p.Close()

	_, err := p.Enqueue(context.Background(), queue.Request{URL: "https://example.com/1"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = p.Poll(ctx, "q1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, queue.ErrPollFetchFailed)

	assert.Equal(t, []string{"q1"}, p.Active(), "poll task survives the caller giving up")
	assert.Empty(t, sink.OnErrorCalls())
	require.Len(t, p.Items(), 1)
	assert.Equal(t, enums.QueueStatusQueued, p.Items()[0].Status)
}

func TestPoller_RefreshAll(t *testing.T) {
	now := time.Now()
	var listErr error
	api := &mocks.APIMock{
		QueueListFunc: func(context.Context) ([]queue.Item, error) {
			if listErr != nil {
				return nil, listErr
			}
			return []queue.Item{
				{ID: "old", CreatedAt: now.Add(-time.Hour), Status: enums.QueueStatusCompleted, Progress: 100},
				{ID: "new", CreatedAt: now, Status: enums.QueueStatusProcessing, Progress: 10},
			}, nil
		},
	}
	sink := newSink()
	p := queue.NewPoller(queue.Params{API: api, Sink: sink})

	items, err := p.RefreshAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
	require.Len(t, sink.OnQueueSnapshotCalls(), 1)
	assert.Equal(t, items, sink.OnQueueSnapshotCalls()[0].Items)
	assert.Empty(t, p.Active(), "refresh does not start polls")

	listErr = errors.New("timeout")
	_, err = p.RefreshAll(context.Background())
	require.Error(t, err)
	require.Len(t, sink.OnErrorCalls(), 1)
	assert.Contains(t, sink.OnErrorCalls()[0].Msg, "failed to refresh queue")
	assert.Len(t, p.Items(), 2, "collection kept on failure")
}

func TestPoller_ReEnqueueSameIDKeepsSinglePoll(t *testing.T) {
	api := &mocks.APIMock{
		SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
			return queue.Item{ID: "dup"}, nil
		},
		QueueStatusFunc: func(_ context.Context, id string) (queue.Item, error) {
			return queue.Item{ID: id, Status: enums.QueueStatusProcessing}, nil
		},
	}
	p := queue.NewPoller(queue.Params{API: api, Sink: newSink(), Interval: time.Hour})
	_, err := p.Enqueue(context.Background(), queue.Request{URL: "a"})
	require.NoError(t, err)
	_, err = p.Enqueue(context.Background(), queue.Request{URL: "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"dup"}, p.Active())
	assert.Len(t, p.Items(), 1)

	p.Close()
	p.Close()
	require.NoError(t, p.Wait(context.Background()))
	assert.Empty(t, p.Active())
}

func TestPoller_WaitCanceled(t *testing.T) {
	api := &mocks.APIMock{SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
		return queue.Item{ID: "slow"}, nil
	}}
	p := queue.NewPoller(queue.Params{API: api, Sink: newSink(), Interval: time.Hour})
	defer p.Close()
	_, err := p.Enqueue(context.Background(), queue.Request{URL: "a"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)
}

func TestPoller_WaitForFinishHandlers(t *testing.T) {
	api := &mocks.APIMock{
		SubmitQueueFunc: func(context.Context, queue.Request) (queue.Item, error) {
			return queue.Item{ID: "q3"}, nil
		},
		QueueStatusFunc: func(_ context.Context, id string) (queue.Item, error) {
			return queue.Item{ID: id, Status: enums.QueueStatusCompleted, Progress: 100}, nil
		},
	}
	var handled atomic.Bool
	handler := &mocks.EventHandlerMock{OnQueueFinishedFunc: func(request.OnQueueFinished) {
		time.Sleep(50 * time.Millisecond)
		handled.Store(true)
	}}
	p := queue.NewPoller(queue.Params{API: api, Sink: newSink(), Interval: 5 * time.Millisecond,
		Handlers: []queue.EventHandler{handler}})

	_, err := p.Enqueue(context.Background(), queue.Request{URL: "https://example.com/x"})
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))
	assert.True(t, handled.Load(), "wait returns after finish handlers")
}

func newSink() *mocks.SinkMock {
	return &mocks.SinkMock{
		OnErrorFunc:           func(string) {},
		OnQueueItemUpdateFunc: func(queue.Item) {},
		OnQueueSnapshotFunc:   func([]queue.Item) {},
	}
}
