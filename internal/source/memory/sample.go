package memory

import (
	_ "embed"
)

//go:embed sample.yaml
var sampleFixture []byte

// Sample returns a store seeded with the built-in demo accounts. It is the
// memory source used when no fixture file is configured.
func Sample(opts ...Option) (*Store, error) {
	fx, err := ParseFixture(sampleFixture)
	if err != nil {
		return nil, err
	}
	return FromFixture(fx, opts...), nil
}
