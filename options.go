package segment

// Option configures pyramid construction and live-wire tracing.
// Use functional options to override the defaults:
//
//	pyramid := segment.BuildCostPyramid(raster,
//	    segment.WithLevels(5),
//	    segment.WithSmoothIterations(2))
type Option func(*options)

// options holds optional configuration shared by the pyramid builder
// and the tracer.
type options struct {
	levels           int
	smoothIterations int
	allowDiagonals   bool
}

// defaultOptions returns the defaults: 4 pyramid levels, one smoothing
// pass, 8-connected tracing.
func defaultOptions() options {
	return options{
		levels:           4,
		smoothIterations: 1,
		allowDiagonals:   true,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLevels sets the number of pyramid levels. Values below 1 are
// treated as 1. The builder may stop earlier if a level would shrink
// below a usable size.
func WithLevels(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.levels = n
	}
}

// WithSmoothIterations sets how many 3x3 smoothing passes run over the
// cost field before downsampling. Negative values are treated as 0.
func WithSmoothIterations(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.smoothIterations = n
	}
}

// WithDiagonals selects 8-connected (true, the default) or 4-connected
// (false) grid search in the live-wire tracer.
func WithDiagonals(allow bool) Option {
	return func(o *options) {
		o.allowDiagonals = allow
	}
}
