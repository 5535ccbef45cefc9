package monero

import (
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/sony/gobreaker"

	_log "github.com/canonical-ledgers/xmrts/log"
)

var log = _log.New("monero")

// Client makes requests to a monerod node. Daemon is used for JSON-RPC
// requests to /json_rpc, and its embedded http.Client, with its Timeout, for
// requests to monerod's other JSON endpoints. All requests go through a
// circuit breaker that stops requests to a node that keeps failing.
//
// Client is safe for concurrent use once its fields are set.
type Client struct {
	Daemon       jrpc.Client
	DaemonServer string

	breaker *gobreaker.CircuitBreaker
}

// DaemonDefault is the default monerod RPC endpoint for mainnet.
const DaemonDefault = "http://localhost:18081"

// NewClient returns a pointer to a Client initialized with the default
// localhost endpoint for monerod and a 20 second timeout.
func NewClient() *Client {
	c := &Client{DaemonServer: DaemonDefault}
	c.Daemon.Timeout = 20 * time.Second
	c.breaker = newCircuitBreaker("monerod")
	return c
}

// DaemonRequest makes a request to monerod's JSON-RPC API at /json_rpc.
// Errors returned by monerod are jrpc.Error values. Any other error wraps
// ErrTransport.
func (c *Client) DaemonRequest(method string, params, result interface{}) error {
	url := c.DaemonServer + "/json_rpc"
	if c.Daemon.DebugRequest {
		fmt.Println("monerod:", url)
	}
	var rpcErr error
	_, err := c.execute(func() (interface{}, error) {
		err := c.Daemon.Request(url, method, params, result)
		if _, ok := err.(jrpc.Error); ok {
			// The node is up, so do not count this against it.
			rpcErr = err
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		return err
	}
	return rpcErr
}

// execute runs f through the circuit breaker, if any, and wraps all errors
// with ErrTransport.
func (c *Client) execute(f func() (interface{}, error)) (interface{}, error) {
	var res interface{}
	var err error
	if c.breaker != nil {
		res, err = c.breaker.Execute(f)
	} else {
		res, err = f()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return res, nil
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) /
				float64(counts.Requests)
			return counts.Requests > 10 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warnf("%v seems down, stop allowing requests", name)
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Infof("checking %v status", name)
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Infof("%v seems ok, restart allowing requests", name)
			}
		},
	})
}
