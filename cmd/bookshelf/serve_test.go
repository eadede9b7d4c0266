package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	testlogr "github.com/go-logr/logr/testing"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvakame/bookshelf/internal/log"
)

func TestRunServe(t *testing.T) {
	conf := viper.New()
	conf.Set("introspection", true)
	conf.Set("playground", true)
	conf.Set("otlp-endpoint", "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

	errCh := make(chan error, 1)
	go func() {
		errCh <- runServe(ctx, conf, ln)
	}()

	client := &http.Client{Timeout: 5 * time.Second}

	require.Eventually(t, func() bool {
		resp, err := client.Get(base + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := client.Post(base+"/query", "application/json", strings.NewReader(`{"query":"{ book(id: \"1\") { title } }"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &result), string(body))
	assert.JSONEq(t, `{"book":{"title":"Mareyalaadithe"}}`, string(result.Data))

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = client.Get(base + "/healthz")
	assert.Error(t, err, "listener is closed after shutdown")
}

func TestServeCmd_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = execute(t, "", "serve", "--addr", ln.Addr().String())
	assert.Error(t, err)
}
