package metrics

type Factory interface {
	NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter]
	NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram]
}

type Histogram interface {
	Observe(float64)
}

type Vec[T any] interface {
	WithLabelValues(lvs ...string) T
}

type Counter interface {
	Inc()
	Add(float64)
}

type Opts struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
}

type CounterOpts Opts
type HistogramOpts struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string

	Buckets []float64
}

// VoidFactory returns metrics factory without any collection.
func VoidFactory() Factory {
	return &noopFactory{}
}
