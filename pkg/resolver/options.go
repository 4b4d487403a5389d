package resolver

import "github.com/pygacity/sandlersteam/pkg/log"

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for region decisions. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLiquidApproximation enables the compressed-liquid approximation for
// subcooled (T, P) states below the lowest tabulated subcooled isobar:
// v, u and s take their saturated-liquid values at T and
// h = hf + vf (P - Psat).
func WithLiquidApproximation(enabled bool) Option {
	return func(r *Resolver) {
		r.liquidApprox = enabled
	}
}
