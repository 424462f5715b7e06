// Package metrics wraps the prometheus counters and gauges an
// embedding application can register to observe node activity.
// Recorder satisfies olink.MetricsHook structurally; the core package
// never imports this one, avoiding an import cycle, so a Recorder is
// handed to BaseNode.SetMetrics through that narrow interface.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	linkTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olink",
			Name:      "link_total",
			Help:      "Link messages processed, by role and direction.",
		},
		[]string{"role", "direction"},
	)
	unlinkTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olink",
			Name:      "unlink_total",
			Help:      "Unlink messages processed, by role and direction.",
		},
		[]string{"role", "direction"},
	)
	invokeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olink",
			Name:      "invoke_total",
			Help:      "Invoke messages processed, by role and direction.",
		},
		[]string{"role", "direction"},
	)
	decodeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olink",
			Name:      "decode_errors_total",
			Help:      "Inbound frames dropped due to a decode or dispatch failure.",
		},
		[]string{"role"},
	)
	noWriterTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olink",
			Name:      "no_writer_drops_total",
			Help:      "Outbound messages dropped because no writer was set.",
		},
		[]string{"role"},
	)
	pendingInvokes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "olink",
			Name:      "pending_invokes",
			Help:      "Invocations awaiting a reply, per client node.",
		},
		[]string{"node"},
	)
)

// Register registers all olink collectors with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(linkTotal, unlinkTotal, invokeTotal, decodeErrorsTotal, noWriterTotal, pendingInvokes)
	})
}

// Recorder is the metrics hook a node accepts. role is "client" or
// "remote"; direction is "in" or "out".
type Recorder struct {
	role string
}

// NewRecorder returns a Recorder for the given role ("client" or
// "remote"), registering collectors on first use.
func NewRecorder(role string) *Recorder {
	Register()
	return &Recorder{role: role}
}

func (r *Recorder) IncLink(direction string)   { linkTotal.WithLabelValues(r.role, direction).Inc() }
func (r *Recorder) IncUnlink(direction string) { unlinkTotal.WithLabelValues(r.role, direction).Inc() }
func (r *Recorder) IncInvoke(direction string) { invokeTotal.WithLabelValues(r.role, direction).Inc() }
func (r *Recorder) IncDecodeError()            { decodeErrorsTotal.WithLabelValues(r.role).Inc() }
func (r *Recorder) IncNoWriter()               { noWriterTotal.WithLabelValues(r.role).Inc() }
func (r *Recorder) SetPending(nodeID int64, count int) {
	pendingInvokes.WithLabelValues(strconv.FormatInt(nodeID, 10)).Set(float64(count))
}
