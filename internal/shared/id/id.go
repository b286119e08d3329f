// Package id generates the prefixed ULIDs used across arcks.
//
// Two kinds exist: relay request IDs (req_*), echoed in X-Request-ID, and
// hover session tokens (hov_*), which tag every summary request so that a
// response arriving after its session was superseded can be recognised and
// dropped. ULIDs from one generator are strictly increasing, so two tokens
// minted in the same millisecond still compare in creation order.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies one relay request.
type RequestID string

// SessionToken identifies one hover session.
type SessionToken string

const (
	RequestPrefix = "req"
	SessionPrefix = "hov"
)

// Generator generates monotonic ULIDs.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator seeded from crypto/rand.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader, time.Now)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
// and clock, for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader, now func() time.Time) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     now,
	}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new relay request ID.
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewSessionToken generates a new hover session token.
func NewSessionToken() SessionToken {
	return SessionToken(Default().GenerateWithPrefix(SessionPrefix))
}

func (id RequestID) String() string    { return string(id) }
func (t SessionToken) String() string { return string(t) }

// IsZero reports whether the token is unset.
func (t SessionToken) IsZero() bool { return t == "" }

// IsValid checks that s is a prefixed or bare ULID.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse parses a bare or prefixed ULID.
func Parse(s string) (ulid.ULID, error) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	return ulid.Parse(s)
}

// Timestamp extracts the creation time from an ID.
func Timestamp(s string) (time.Time, error) {
	parsed, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
