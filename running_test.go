package twocaptcha

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pollServer answers /createTask with a fixed id and replays the given
// /getTaskResult bodies in order, repeating the last one.
func pollServer(t *testing.T, polls *atomic.Int32, results ...string) *Client {
	t.Helper()
	return newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/createTask":
			writeJSON(w, `{"errorId":0,"taskId":100}`)
		case "/getTaskResult":
			n := int(polls.Add(1))
			if n > len(results) {
				n = len(results)
			}
			writeJSON(w, results[n-1])
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestWaitUntilDone_ReadyOnFirstPoll(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls,
		`{"errorId":0,"status":"ready","solution":{"token":"tok_abc"}}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	task, err := rt.WaitUntilDone(context.Background(), 0, 0)
	require.NoError(t, err)
	require.True(t, task.IsReady())
	require.Equal(t, int32(1), polls.Load())
	require.True(t, rt.IsReady())
	require.False(t, rt.IsProcessing())
}

func TestWaitUntilDone_ProcessingThenReady(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls,
		`{"errorId":0,"status":"processing"}`,
		`{"errorId":0,"status":"ready","solution":{"token":"tok_abc"}}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	task, err := rt.WaitUntilDone(context.Background(), 0, 0)
	require.NoError(t, err)
	require.True(t, task.IsReady())
	require.Equal(t, int32(2), polls.Load())
}

func TestWaitUntilDone_Timeout(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls, `{"errorId":0,"status":"processing"}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	_, err = rt.WaitUntilDone(context.Background(), 5*time.Millisecond, 30*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
	require.GreaterOrEqual(t, polls.Load(), int32(1))
	// timeout fabricates no terminal state
	require.True(t, rt.IsProcessing())
	require.False(t, rt.IsReady())
}

func TestWaitUntilDone_ServiceErrorIsTerminal(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls,
		`{"errorId":12,"errorCode":"ERROR_CAPTCHA_UNSOLVABLE"}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	_, err = rt.WaitUntilDone(context.Background(), 0, 0)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 12, se.Code)
	require.Equal(t, int32(1), polls.Load())

	// error is latched, no further network calls
	require.ErrorIs(t, rt.Refresh(context.Background()), err)
	require.Equal(t, int32(1), polls.Load())
	require.False(t, rt.IsProcessing())
}

func TestWaitUntilDone_TransportErrorPropagates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/createTask" {
			writeJSON(w, `{"errorId":0,"taskId":100}`)
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	_, err = rt.WaitUntilDone(context.Background(), 0, 0)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, http.StatusServiceUnavailable, te.StatusCode)

	// transport errors are not latched; polling can resume
	require.True(t, rt.IsProcessing())
}

func TestWaitUntilDone_ContextCancel(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls, `{"errorId":0,"status":"processing"}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = rt.WaitUntilDone(ctx, 500*time.Millisecond, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRefresh_NoopWhenReady(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls,
		`{"errorId":0,"status":"ready","solution":{"token":"tok_abc"}}`)

	rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
	require.NoError(t, err)

	require.NoError(t, rt.Refresh(context.Background()))
	require.NoError(t, rt.Refresh(context.Background()))
	require.Equal(t, int32(1), polls.Load())
}

func TestConcurrentWaits(t *testing.T) {
	var polls atomic.Int32
	c := pollServer(t, &polls,
		`{"errorId":0,"status":"processing"}`,
		`{"errorId":0,"status":"processing"}`,
		`{"errorId":0,"status":"processing"}`,
		`{"errorId":0,"status":"ready","solution":{"token":"tok_abc"}}`)

	const handles = 4
	errc := make(chan error, handles)
	for i := 0; i < handles; i++ {
		rt, err := c.CreateTask(context.Background(), TypeTurnstileProxyless, nil)
		require.NoError(t, err)
		go func() {
			_, err := rt.WaitUntilDone(context.Background(), 5*time.Millisecond, 2*time.Second)
			errc <- err
		}()
	}
	for i := 0; i < handles; i++ {
		require.NoError(t, <-errc)
	}
}
