package server

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/7phs/binbuf/client"
	"github.com/7phs/binbuf/internal/config"
	"github.com/7phs/binbuf/internal/storages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type testConfig struct {
	expiration time.Duration
}

func (o *testConfig) Port() int {
	return 0
}

func (o *testConfig) Expiration() time.Duration {
	return o.expiration
}

func (o *testConfig) Maintenance() time.Duration {
	return time.Hour
}

func (o *testConfig) LogLevel() config.LogLevel {
	return config.LogLevelDebug
}

func (o *testConfig) Mode() config.StorageMode {
	return config.StorageModeMap
}

func (o *testConfig) BufferSize() int {
	return 64
}

func (o *testConfig) TimeSource() config.TimeSource {
	return systemTime{}
}

type systemTime struct{}

func (systemTime) Now() time.Time {
	return time.Now()
}

func newTestServer(t *testing.T, expiration time.Duration) (*DefaultServer, *client.Client) {
	conf := &testConfig{expiration: expiration}

	pool, err := storages.NewMemoryPool(conf.BufferSize())
	require.NoError(t, err)

	st, err := storages.NewInMemStorages(conf, storages.NewMapDictionary(pool, conf.TimeSource()))
	require.NoError(t, err)

	srv := NewServer(zap.NewNop(), conf, st)
	ln := fasthttputil.NewInmemoryListener()

	go func() {
		_ = srv.Serve(ln)
	}()

	return srv, client.NewClient("http://binbuf",
		client.WithDial(func(addr string) (net.Conn, error) {
			return ln.Dial()
		}),
		client.WithTimeout(time.Second),
		client.WithConnectionClose(),
	)
}

func startServer(t *testing.T, expiration time.Duration) *client.Client {
	srv, cl := newTestServer(t, expiration)
	t.Cleanup(srv.Stop)

	return cl
}

func TestServer_AddGet(t *testing.T) {
	cl := startServer(t, time.Minute)

	require.NoError(t, cl.Add("key", "value"))

	value, err := cl.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	resp, err := cl.Do(fasthttp.MethodGet, "/key")
	require.NoError(t, err)
	assert.Equal(t, contentTypeText, resp.Header("Content-Type"))
}

func TestServer_LargeBinaryBody(t *testing.T) {
	cl := startServer(t, time.Minute)

	value := bytes.Repeat([]byte{0xff, 0x00, 0xfe}, 3*1024)

	require.NoError(t, cl.AddBytes("binary", value))

	resp, err := cl.Do(fasthttp.MethodGet, "/binary")
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())
	assert.Equal(t, value, resp.Bytes())
	assert.Equal(t, contentTypeBinary, resp.Header("Content-Type"))

	_, ok := resp.Text()
	assert.False(t, ok)
}

func TestServer_NotFound(t *testing.T) {
	cl := startServer(t, time.Minute)

	_, err := cl.Get("unknown")
	assert.Equal(t, client.ErrNotFound, err)
}

func TestServer_Expired(t *testing.T) {
	cl := startServer(t, -time.Second)

	require.NoError(t, cl.Add("key", "value"))

	_, err := cl.Get("key")
	assert.Equal(t, client.ErrNotFound, err)
}

func TestServer_UnsupportedMethod(t *testing.T) {
	cl := startServer(t, time.Minute)

	resp, err := cl.Do(fasthttp.MethodPut, "/key", []byte("value"))
	require.NoError(t, err)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, resp.Code())
}

func TestServer_StopAfterRequests(t *testing.T) {
	srv, cl := newTestServer(t, time.Minute)

	require.NoError(t, cl.Add("key", "value"))

	_, err := cl.Get("key")
	require.NoError(t, err)

	done := make(chan struct{})

	go func() {
		defer close(done)

		srv.Stop()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServer_IdleTimeout(t *testing.T) {
	srv := NewServer(zap.NewNop(), &testConfig{expiration: time.Minute}, nil)

	assert.Equal(t, idleTimeout, srv.server.IdleTimeout)
}

type countingMaintenance struct {
	calls int
	err   error
}

func (o *countingMaintenance) ID() string {
	return "counting"
}

func (o *countingMaintenance) Clean(ctx context.Context) error {
	o.calls++

	return o.err
}

func TestGroupMaintenance_Run(t *testing.T) {
	ok := &countingMaintenance{}
	failed := &countingMaintenance{err: storages.ErrOutOfLimit}

	group := NewGroupMaintenance(zaptest.NewLogger(t), ok, failed)
	group.Run(context.Background())
	group.Run(context.Background())

	assert.Equal(t, 2, ok.calls)
	assert.Equal(t, 2, failed.calls)
}

func TestGroupMaintenance_StartStops(t *testing.T) {
	m := &countingMaintenance{}
	group := NewGroupMaintenance(zaptest.NewLogger(t), m)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		group.Start(ctx, time.Hour)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("maintenance did not stop")
	}

	assert.Equal(t, 0, m.calls)
}
