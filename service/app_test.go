package service

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"postboard/app/repositories/mock"
	"postboard/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerServeAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Primary.Env = "test"

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(cfg, zerolog.Nop(), mock.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/posts")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "9999"
	cfg.Server.ReadTimeout = 3
	cfg.Server.WriteTimeout = 4
	cfg.Server.IdleTimeout = 5

	server := NewServer(cfg, zerolog.Nop(), mock.NewStore())

	assert.Equal(t, ":9999", server.httpServer.Addr)
	assert.Equal(t, 3*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 4*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 5*time.Second, server.httpServer.IdleTimeout)
}

func TestRunAppServerStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "0"
	cfg.Store = config.StoreConfig{Driver: config.DriverBadger, InMemory: true}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunAppServer(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
