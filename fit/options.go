package fit

// config holds solver settings shared by the drivers.
type config struct {
	maxIter int
	tol     float64
	starts  int
	seed    uint64
}

func defaultConfig() config {
	return config{
		maxIter: 1000,
		tol:     1e-16,
		starts:  8,
		seed:    1,
	}
}

// Option configures a fit driver.
type Option func(*config)

// WithMaxIterations caps the number of solver iterations.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithTolerance sets the objective convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tol = tol
	}
}

// WithStarts sets the number of restarts used by MultiStart. The first
// start is always the problem's own initial values.
func WithStarts(n int) Option {
	return func(c *config) {
		c.starts = n
	}
}

// WithSeed sets the deterministic seed for randomized start points.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
