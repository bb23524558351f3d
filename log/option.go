package log

// Option defines a functional option for configuring a [Logger].
type Option func(config) config

// apply folds the given options over a config left to right.
func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}
