package simple

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 9

// Generator issues ids of the form "<prefix>-<unix millis>-<random>". The
// millisecond part is strictly increasing within a process, so ids never
// repeat even when the clock stalls or steps back.
type Generator struct {
	mu     sync.Mutex
	prefix string
	last   int64
	now    func() time.Time
}

func New(prefix string) *Generator {
	//nolint:exhaustruct
	return &Generator{
		prefix: prefix,
		now:    time.Now,
	}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}

	g.last = ms

	suffix, err := randomSuffix()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%s", g.prefix, ms, suffix), nil
}

func randomSuffix() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate random suffix: %w", err)
	}

	return strings.ReplaceAll(u.String(), "-", "")[:suffixLen], nil
}
