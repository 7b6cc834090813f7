// Package id generates sortable identifiers for long-lived server objects.
//
// IDs are ULIDs, optionally prefixed by their type (strm_*), so log lines
// sort by creation time and stay readable.
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

// StreamID identifies one evaluation stream connection
type StreamID string

// StreamPrefix tags stream IDs.
const StreamPrefix = "strm"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator over crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// such as a fixed reader in tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefix_ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewStreamID generates a new stream ID
func NewStreamID() StreamID {
	return StreamID(Default().GenerateWithPrefix(StreamPrefix))
}

func (id StreamID) String() string { return string(id) }

// Frame names the n-th frame on a stream; tool logs use it as request ID.
func (id StreamID) Frame(n int) string {
	return fmt.Sprintf("%s#%d", id, n)
}

// Timestamp extracts the creation time from a bare or prefixed ID.
func Timestamp(s string) (time.Time, error) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	parsed, err := ulid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
