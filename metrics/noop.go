package metrics

type noopFactory struct{}

func (d *noopFactory) NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter] {
	return noopCounter{}
}

func (d *noopFactory) NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram] {
	return noopHistogram{}
}

type noopCounter struct{}

func (counter noopCounter) Inc()        {}
func (counter noopCounter) Add(float64) {}
func (counter noopCounter) WithLabelValues(lvls ...string) Counter {
	return noopCounter{}
}

type noopHistogram struct{}

func (counter noopHistogram) Observe(float64) {}
func (counter noopHistogram) WithLabelValues(lvls ...string) Histogram {
	return noopHistogram{}
}
