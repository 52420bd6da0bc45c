package metrics

import (
	"strconv"
	"time"

	"github.com/NethermindEth/junovm/vm"
)

const namespace = "cairovm"

// NewVMListener builds a vm.EventListener that counts host reads and times
// invocations.
func NewVMListener(factory Factory) vm.EventListener {
	hostReads := factory.NewCounterVec(CounterOpts{
		Namespace: namespace,
		Subsystem: "host",
		Name:      "reads_total",
		Help:      "State reads forwarded to the host, by kind and whether the value existed.",
	}, []string{"kind", "found"})
	invocations := factory.NewHistogramVec(HistogramOpts{
		Namespace: namespace,
		Name:      "invocation_duration_seconds",
		Help:      "Time from receiving an invocation to reporting its outcome.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
	}, []string{"kind", "outcome"})

	return &vm.SelectiveListener{
		OnHostReadCb: func(kind vm.StateKind, found bool) {
			hostReads.WithLabelValues(kind.String(), strconv.FormatBool(found)).Inc()
		},
		OnInvocationCb: func(kind vm.InvocationKind, took time.Duration, err error) {
			invocations.WithLabelValues(kind.String(), outcome(err)).Observe(took.Seconds())
		},
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
