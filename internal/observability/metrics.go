package observability

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/cecscope/internal/cec"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cecscope",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cecscope",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cecscope",
			Subsystem: "decoder",
			Name:      "frames_total",
			Help:      "Decoded CEC frames by opcode.",
		},
		[]string{"node", "opcode"},
	)
	frameDiagnostics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cecscope",
			Subsystem: "decoder",
			Name:      "diagnostics_total",
			Help:      "Diagnostics attached to decoded frames.",
		},
		[]string{"node", "kind"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cecscope",
			Subsystem: "decoder",
			Name:      "errors_total",
			Help:      "Frames that could not be decoded.",
		},
		[]string{"node"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, framesDecoded, frameDiagnostics, decodeErrors)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// DecoderMetrics counts decode outcomes for one node.
type DecoderMetrics struct {
	Node string
}

var _ cec.Observer = DecoderMetrics{}

func (m DecoderMetrics) FrameDecoded(f *cec.DecodedFrame) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(m.Node, opcodeLabel(f)).Inc()
	for _, d := range f.Diagnostics {
		frameDiagnostics.WithLabelValues(m.Node, string(d.Kind)).Inc()
	}
}

func (m DecoderMetrics) FrameRejected(error) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(m.Node).Inc()
}

func opcodeLabel(f *cec.DecodedFrame) string {
	if f.Opcode == nil {
		return "poll"
	}
	return fmt.Sprintf("0x%02x", uint8(*f.Opcode))
}
