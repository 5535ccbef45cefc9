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

package srv

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusAPIRequests   *prometheus.CounterVec
	prometheusAPIErrors     *prometheus.CounterVec
	prometheusAPIDuration   *prometheus.HistogramVec
	prometheusCommits       prometheus.Counter
	prometheusVerifyResults *prometheus.CounterVec

	prometheusMetricsInitOnce sync.Once
)

func InitPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmrtsd",
			Subsystem: "api",
			Name:      "requests",
			Help:      "Number of JSON-RPC requests by method",
		},
		[]string{"method"},
	)
	prometheusAPIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmrtsd",
			Subsystem: "api",
			Name:      "errors",
			Help:      "Number of JSON-RPC error responses by method and code",
		},
		[]string{
			"method", // method called
			"code",   // JSON-RPC error code returned
		},
	)
	prometheusAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xmrtsd",
			Subsystem: "api",
			Name:      "duration_seconds",
			Help:      "Duration of JSON-RPC method calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	prometheusCommits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "xmrtsd",
			Subsystem: "timestamp",
			Name:      "commits",
			Help:      "Number of commitment addresses derived",
		},
	)
	prometheusVerifyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmrtsd",
			Subsystem: "timestamp",
			Name:      "verify_results",
			Help:      "Number of verified transactions by result",
		},
		[]string{"result"}, // matched, unmatched or pending
	)
}

// instrument records the count, duration and errors of calls to f.
func instrument(method string, f jrpc.MethodFunc) jrpc.MethodFunc {
	return func(data json.RawMessage) interface{} {
		start := time.Now()
		res := f(data)
		prometheusAPIRequests.WithLabelValues(method).Inc()
		prometheusAPIDuration.WithLabelValues(method).
			Observe(time.Since(start).Seconds())
		if err, ok := res.(jrpc.Error); ok {
			prometheusAPIErrors.WithLabelValues(method,
				strconv.FormatInt(int64(err.Code), 10)).Inc()
		}
		return res
	}
}

func countResult(matched, pending bool) {
	result := "unmatched"
	switch {
	case pending:
		result = "pending"
	case matched:
		result = "matched"
	}
	prometheusVerifyResults.WithLabelValues(result).Inc()
}
