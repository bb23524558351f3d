//go:build pprof

package profile

// Option accumulates pkg/profile arguments onto a chain.
type Option func(chain) chain

// fold applies each option to the chain in order.
func fold(c chain, opts ...Option) chain {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
