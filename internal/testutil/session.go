package testutil

// FixedSessionGenerator returns the same session id every time.
//
// The same scenario with the same FixedSessionGenerator produces
// byte-identical evaluation logs, which is what golden traces compare.
//
// Unlike engine.FixedGenerator which returns ids in sequence, this generator
// never runs out.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	session string
}

// NewFixedSessionGenerator creates a new fixed session generator.
//
// The session is typically set in the scenario YAML:
//
//	session: "test-session-arith"
//
// If session is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(session string) *FixedSessionGenerator {
	if session == "" {
		session = "test-session-default"
	}
	return &FixedSessionGenerator{session: session}
}

// Generate returns the fixed session id.
//
// Implements engine.SessionGenerator interface.
func (g *FixedSessionGenerator) Generate() string {
	return g.session
}
