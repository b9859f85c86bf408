package config

// Config holds the generation settings shared by the resolver and the synthesizer.
// It is a value type: establish it once before generation starts and pass copies.
type Config struct {
	// StrictSetterCheck emits null rejection inside fluent setters.
	// build() rejects nulls of non-nullable properties regardless.
	StrictSetterCheck bool

	// FailFast stops resolution at the first unresolved reference.
	// When false every resolution error of a specification is collected.
	FailFast bool
}

// Default returns the default configuration
func Default() Config {
	return Config{
		StrictSetterCheck: true,
		FailFast:          true,
	}
}
