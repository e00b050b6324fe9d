package stream_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/request"
	"github.com/umputun/yourtube/app/stream"
	"github.com/umputun/yourtube/app/stream/mocks"
)

func TestTracker_SubmitFollowComplete(t *testing.T) {
	src, conns := newSource()
	sink := newSink()
	handler := newHandler()
	submitter := &mocks.SubmitterMock{SubmitJobFunc: func(context.Context, stream.JobRequest) (stream.JobHandle, error) {
		return stream.JobHandle{ID: "42", Token: "videos"}, nil
	}}
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, Submitter: submitter,
		Handlers: []stream.EventHandler{handler}, CompletionGrace: 20 * time.Millisecond})

	h, err := tr.Submit(context.Background(), stream.JobRequest{URL: "https://example.com/v", Directory: "videos"})
	require.NoError(t, err)
	assert.Equal(t, stream.JobHandle{ID: "42", Token: "videos"}, h)
	require.Len(t, src.OpenCalls(), 1)
	assert.Equal(t, h, src.OpenCalls()[0].H)
	require.Len(t, handler.OnStreamStartCalls(), 1)
	assert.Equal(t, "42", handler.OnStreamStartCalls()[0].Req.JobID)

	l := src.OpenCalls()[0].L
	l.OnOpen()
	l.OnMessage("[download] 10.0% of 5MiB")
	l.OnMessage("[download] Sleeping 3.0 seconds")
	l.OnMessage("Download Complete")

	assert.Equal(t, []string{"[download] 10.0% of 5MiB", "[download] Sleeping 3.0 seconds", "Download Complete"}, logLines(sink))
	assert.Equal(t, []string{
		"connected:Connected",
		"progress:Status: [download] 10.0% of 5MiB",
		"progress:Status: Download Complete",
		"complete:Complete",
	}, statuses(sink))

	info, ok := tr.Session()
	require.True(t, ok)
	assert.True(t, info.Terminal)
	assert.Equal(t, 3, info.Lines)
	assert.Equal(t, enums.ConnStateOpen, info.State)

	completed, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, completed)

	_, ok = tr.Session()
	assert.False(t, ok, "session released after grace delay")
	assert.Len(t, conns.get(0).CloseCalls(), 1)
	require.Len(t, handler.OnStreamCompleteCalls(), 1)
	res := handler.OnStreamCompleteCalls()[0].Req
	assert.True(t, res.Completed)
	assert.Equal(t, 3, res.Lines)
	assert.Equal(t, "Complete", res.LastStatus)
}

func TestTracker_CompletionFiresOnce(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, CompletionGrace: time.Hour})
	tr.Start(context.Background(), stream.JobHandle{ID: "1"})

	l := src.OpenCalls()[0].L
	l.OnMessage("---^-^---")
	l.OnMessage("foo.mp4 has already been downloaded")
	l.OnMessage("Download Complete")

	completes := 0
	for _, s := range statuses(sink) {
		if s == "complete:Complete" {
			completes++
		}
	}
	assert.Equal(t, 1, completes)
	info, ok := tr.Session()
	require.True(t, ok)
	assert.Equal(t, 3, info.Lines, "lines after completion are still collected")
	tr.Stop()
}

func TestTracker_SleepingAndHeartbeatKeepStatus(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink})
	tr.Start(context.Background(), stream.JobHandle{ID: "1"})
	defer tr.Stop()

	l := src.OpenCalls()[0].L
	l.OnMessage("[download] 50%")
	l.OnMessage("[download] Sleeping 5.0 seconds")
	l.OnMessage("")

	assert.Equal(t, []string{"progress:Status: [download] 50%"}, statuses(sink))
	info, _ := tr.Session()
	assert.Equal(t, "Status: [download] 50%", info.Status)
	assert.Equal(t, 3, info.Lines)
}

func TestTracker_RestartSameJobClosesPreviousFirst(t *testing.T) {
	var mu sync.Mutex
	var events []string
	src := &mocks.SourceMock{}
	src.OpenFunc = func(_ context.Context, h stream.JobHandle, _ stream.Listener) (stream.Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		n := len(events)
		events = append(events, "open:"+h.ID)
		return &mocks.ConnMock{CloseFunc: func() error {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, fmt.Sprintf("close:%d", n))
			return nil
		}}, nil
	}
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink})
	h := stream.JobHandle{ID: "7", Token: "sub"}

	tr.Start(context.Background(), h)
	src.OpenCalls()[0].L.OnMessage("line 1")
	tr.Start(context.Background(), h)
	src.OpenCalls()[1].L.OnMessage("line 2")
	src.OpenCalls()[0].L.OnMessage("stale line") // from the closed connection

	mu.Lock()
	assert.Equal(t, []string{"open:7", "close:0", "open:7"}, events)
	mu.Unlock()
	info, ok := tr.Session()
	require.True(t, ok)
	assert.Equal(t, []string{"line 1", "line 2"}, info.Log)
	tr.Stop()
	tr.Stop()
}

func TestTracker_RestartSameJobResetsCompletion(t *testing.T) {
	src, _ := newSource()
	handler := newHandler()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: newSink(), CompletionGrace: time.Hour,
		Handlers: []stream.EventHandler{handler}})
	h := stream.JobHandle{ID: "5"}

	tr.Start(context.Background(), h)
	src.OpenCalls()[0].L.OnMessage("Download Complete")
	tr.Start(context.Background(), h)
	tr.Stop()

	require.Len(t, handler.OnStreamCompleteCalls(), 1)
	assert.False(t, handler.OnStreamCompleteCalls()[0].Req.Completed, "restarted run never completed")
	completed, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestTracker_ReconnectKeepsReadPosition(t *testing.T) {
	src, _ := newSource()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: newSink(), ReconnectDelay: time.Millisecond})
	h := stream.JobHandle{ID: "3", Token: "dl"}
	tr.Start(context.Background(), h)
	defer tr.Stop()

	first, ok := src.OpenCalls()[0].L.(stream.Resumable)
	require.True(t, ok, "tracker listeners expose the read position")
	first.Position().Store("", 4)
	src.OpenCalls()[0].L.OnError(fmt.Errorf("%w: eof", stream.ErrTransportLost))

	require.Eventually(t, func() bool { return len(src.OpenCalls()) == 2 }, time.Second, time.Millisecond)
	second, ok := src.OpenCalls()[1].L.(stream.Resumable)
	require.True(t, ok)
	assert.Same(t, first.Position(), second.Position(), "reconnect resumes where the lost connection stopped")

	tr.Start(context.Background(), h)
	third, ok := src.OpenCalls()[2].L.(stream.Resumable)
	require.True(t, ok)
	assert.NotSame(t, first.Position(), third.Position(), "explicit start reads the job log again")
	_, delivered := third.Position().Load()
	assert.Zero(t, delivered)

	tr.Start(context.Background(), stream.JobHandle{ID: "4"})
	fourth, ok := src.OpenCalls()[3].L.(stream.Resumable)
	require.True(t, ok)
	assert.NotSame(t, third.Position(), fourth.Position())
}

func TestTracker_NewJobSupersedesSession(t *testing.T) {
	src, conns := newSource()
	sink := newSink()
	handler := newHandler()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, Handlers: []stream.EventHandler{handler}})

	tr.Start(context.Background(), stream.JobHandle{ID: "1"})
	tr.Start(context.Background(), stream.JobHandle{ID: "2"})
	assert.Len(t, conns.get(0).CloseCalls(), 1)
	require.Len(t, handler.OnStreamCompleteCalls(), 1)
	assert.Equal(t, "1", handler.OnStreamCompleteCalls()[0].Req.JobID)
	assert.False(t, handler.OnStreamCompleteCalls()[0].Req.Completed)

	src.OpenCalls()[0].L.OnMessage("Download Complete")
	assert.Empty(t, logLines(sink), "events from the superseded job are ignored")

	info, ok := tr.Session()
	require.True(t, ok)
	assert.Equal(t, "2", info.Handle.ID)
	tr.Stop()
}

func TestTracker_ReconnectsOnceWithSameHandle(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 20 * time.Millisecond})
	h := stream.JobHandle{ID: "9", Token: "dl"}
	tr.Start(context.Background(), h)
	defer tr.Stop()

	l := src.OpenCalls()[0].L
	l.OnOpen()
	l.OnError(fmt.Errorf("%w: eof", stream.ErrTransportLost))
	l.OnError(fmt.Errorf("%w: eof again", stream.ErrTransportLost))

	require.Eventually(t, func() bool { return len(src.OpenCalls()) == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, src.OpenCalls(), 2, "exactly one reconnect for one lost connection")
	assert.Equal(t, h, src.OpenCalls()[1].H)
	assert.Equal(t, []string{"connected:Connected", "lost:Connection Lost", "connecting:Reconnecting..."}, statuses(sink))

	info, ok := tr.Session()
	require.True(t, ok)
	assert.Equal(t, 1, info.Reconnects)
	assert.Equal(t, enums.ConnStateConnecting, info.State)
}

func TestTracker_TransientErrorNoReconnect(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 10 * time.Millisecond})
	tr.Start(context.Background(), stream.JobHandle{ID: "3"})
	defer tr.Stop()

	src.OpenCalls()[0].L.OnError(fmt.Errorf("%w: reset", stream.ErrTransportTransient))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, src.OpenCalls(), 1)
	assert.Equal(t, []string{"connecting:Connecting..."}, statuses(sink))
}

func TestTracker_NoReconnectAfterCompletion(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 10 * time.Millisecond,
		CompletionGrace: 50 * time.Millisecond})
	tr.Start(context.Background(), stream.JobHandle{ID: "3"})

	l := src.OpenCalls()[0].L
	l.OnMessage("Download Complete")
	l.OnError(stream.ErrTransportLost)

	completed, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Len(t, src.OpenCalls(), 1)
}

func TestTracker_StopCancelsPendingReconnect(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 30 * time.Millisecond})
	tr.Start(context.Background(), stream.JobHandle{ID: "5"})

	src.OpenCalls()[0].L.OnError(stream.ErrTransportLost)
	tr.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, src.OpenCalls(), 1)
	_, ok := tr.Session()
	assert.False(t, ok)
}

func TestTracker_MaxReconnects(t *testing.T) {
	src := &mocks.SourceMock{OpenFunc: func(context.Context, stream.JobHandle, stream.Listener) (stream.Conn, error) {
		return nil, errors.New("connection refused")
	}}
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 10 * time.Millisecond, MaxReconnects: 1})
	tr.Start(context.Background(), stream.JobHandle{ID: "5"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	completed, err := tr.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Len(t, src.OpenCalls(), 2)
	require.Len(t, sink.OnErrorCalls(), 1)
	assert.Contains(t, sink.OnErrorCalls()[0].Msg, "giving up on job 5 after 1 reconnects")
}

func TestTracker_NoReconnectWhenContextCanceled(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, ReconnectDelay: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	tr.Start(ctx, stream.JobHandle{ID: "5"})
	cancel()

	src.OpenCalls()[0].L.OnError(stream.ErrTransportLost)
	time.Sleep(40 * time.Millisecond)
	assert.Len(t, src.OpenCalls(), 1)
	tr.Stop()
}

func TestTracker_SubmitRejected(t *testing.T) {
	src, _ := newSource()
	sink := newSink()
	submitter := &mocks.SubmitterMock{SubmitJobFunc: func(context.Context, stream.JobRequest) (stream.JobHandle, error) {
		return stream.JobHandle{}, errors.New("invalid url")
	}}
	tr := stream.NewTracker(stream.Params{Source: src, Sink: sink, Submitter: submitter})

	_, err := tr.Submit(context.Background(), stream.JobRequest{URL: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid url")
	assert.Empty(t, src.OpenCalls())
	assert.Equal(t, []string{"error:Error"}, statuses(sink))
	require.Len(t, sink.OnErrorCalls(), 1)
	assert.Equal(t, "invalid url", sink.OnErrorCalls()[0].Msg)

	_, ok := tr.Session()
	assert.False(t, ok)
}

func TestTracker_SubmitWithoutSubmitter(t *testing.T) {
	src, _ := newSource()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: newSink()})
	_, err := tr.Submit(context.Background(), stream.JobRequest{URL: "https://example.com"})
	require.Error(t, err)
}

func TestTracker_WaitWithoutSession(t *testing.T) {
	tr := stream.NewTracker(stream.Params{Source: &mocks.SourceMock{}, Sink: newSink()})
	completed, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestTracker_WaitAfterRetire(t *testing.T) {
	src, _ := newSource()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: newSink(), CompletionGrace: time.Millisecond})
	tr.Start(context.Background(), stream.JobHandle{ID: "8"})
	src.OpenCalls()[0].L.OnMessage("Download Complete")

	require.Eventually(t, func() bool { _, ok := tr.Session(); return !ok }, time.Second, time.Millisecond)
	completed, err := tr.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, completed, "retired session is still reported")
}

func TestTracker_LogLimit(t *testing.T) {
	src, _ := newSource()
	tr := stream.NewTracker(stream.Params{Source: src, Sink: newSink(), MaxLogLines: 2})
	tr.Start(context.Background(), stream.JobHandle{ID: "1"})
	defer tr.Stop()

	l := src.OpenCalls()[0].L
	for i := range 5 {
		l.OnMessage(fmt.Sprintf("line %d", i))
	}
	info, ok := tr.Session()
	require.True(t, ok)
	assert.Equal(t, []string{"line 3", "line 4"}, info.Log)
	assert.Equal(t, 5, info.Lines)
}

type connList struct {
	mu    sync.Mutex
	conns []*mocks.ConnMock
}

func (c *connList) get(i int) *mocks.ConnMock {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conns[i]
}

func newSource() (*mocks.SourceMock, *connList) {
	conns := &connList{}
	src := &mocks.SourceMock{OpenFunc: func(context.Context, stream.JobHandle, stream.Listener) (stream.Conn, error) {
		conns.mu.Lock()
		defer conns.mu.Unlock()
		c := &mocks.ConnMock{CloseFunc: func() error { return nil }}
		conns.conns = append(conns.conns, c)
		return c, nil
	}}
	return src, conns
}

func newSink() *mocks.SinkMock {
	return &mocks.SinkMock{
		OnErrorFunc:        func(string) {},
		OnLogLineFunc:      func(string) {},
		OnStatusChangeFunc: func(enums.StatusKind, string) {},
	}
}

func newHandler() *mocks.EventHandlerMock {
	return &mocks.EventHandlerMock{
		OnStreamStartFunc:    func(request.OnStreamStart) {},
		OnStreamCompleteFunc: func(request.OnStreamComplete) {},
	}
}

func statuses(sink *mocks.SinkMock) []string {
	res := []string{}
	for _, c := range sink.OnStatusChangeCalls() {
		res = append(res, c.Kind.String()+":"+c.Text)
	}
	return res
}

func logLines(sink *mocks.SinkMock) []string {
	res := []string{}
	for _, c := range sink.OnLogLineCalls() {
		res = append(res, c.Line)
	}
	return res
}
