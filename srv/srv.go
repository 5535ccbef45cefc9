// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

// Package srv implements the xmrtsd JSON-RPC 2.0 API server.
package srv

import (
	"context"
	"net/http"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/canonical-ledgers/xmrts/api"
	"github.com/canonical-ledgers/xmrts/flag"
	_log "github.com/canonical-ledgers/xmrts/log"
	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var log = _log.New("srv")

// Node is the monerod collaborator used by the API. monero.Client is a Node.
type Node interface {
	timestamp.Fetcher
	GetInfo() (monero.Info, error)
}

// Config holds the settings and dependencies of the API methods.
type Config struct {
	Node     Node
	Network  monero.Network
	SpendKey timestamp.SpendKey
	// RequestRate limits the node requests per second made by
	// verify-transactions.
	RequestRate int
	// Timeout bounds the node requests of a single API call.
	Timeout time.Duration
	Version string
}

// Handler returns the http.Handler serving the JSON-RPC 2.0 API at / and /v1,
// and Prometheus metrics at /metrics.
func Handler(cfg Config) http.Handler {
	InitPrometheusMetrics()
	jrpc.DebugMethodFunc = true
	jrpcHandler := jrpc.HTTPRequestHandler(methods{cfg}.methodMap())
	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add(http.CanonicalHeaderKey("Xmrtsd-Version"), cfg.Version)
		w.Header().Add(http.CanonicalHeaderKey("Xmrtsd-Api-Version"),
			api.APIVersion)
		jrpcHandler(w, r)
	}

	srvMux := http.NewServeMux()
	srvMux.Handle("/", handler)
	srvMux.Handle("/v1", handler)
	srvMux.Handle("/metrics", promhttp.Handler())

	cors := cors.New(cors.Options{AllowedOrigins: []string{"*"}})
	return cors.Handler(srvMux)
}

// Start the server in its own goroutine. If ctx is canceled, the server is
// shut down and any connections will be drained. The done channel is closed when
// the server exits for any reason. If the done channel is closed before ctx
// is canceled, an error occurred.
func Start(ctx context.Context) (done <-chan struct{}) {
	cfg := Config{
		Node:        flag.MoneroClient,
		Network:     flag.Network,
		SpendKey:    flag.SpendKey,
		RequestRate: int(flag.RequestRate),
		Timeout:     flag.APITimeout,
		Version:     flag.Revision,
	}
	srv := http.Server{
		Addr:              flag.APIAddress,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	_done := make(chan struct{})
	go func() {
		var err error
		if flag.HasTLS {
			err = srv.ListenAndServeTLS(flag.TLSCertFile, flag.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			log.Errorf("srv.ListenAndServe(): %v", err)
		}
		close(_done)
	}()
	go func() {
		select {
		case <-ctx.Done():
		case <-_done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("srv.Shutdown(): %v", err)
		}
	}()
	return _done
}
