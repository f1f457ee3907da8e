// Package cache stores generated traces keyed by request. Generators are
// deterministic, so a trace for the same algorithm, dataset and target can be
// served again without regenerating it.
package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// Store is a trace cache. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) (trace.Trace, bool, error)
	Put(ctx context.Context, key string, tr trace.Trace) error
}

// Key returns the hex sha256 of the canonical request encoding. Algorithm
// names are normalized and an invalid target encodes as "nan".
func Key(cfg experiment.Config) string {
	var b strings.Builder
	b.WriteString(experiment.Normalize(cfg.Algorithm))
	b.WriteByte('|')
	for i, v := range cfg.Input {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('|')
	if cfg.Target.Valid {
		b.WriteString(strconv.Itoa(cfg.Target.Value))
	} else {
		b.WriteString("nan")
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

type entry struct {
	key string
	tr  trace.Trace
}

// Memory is a bounded in-process cache that evicts the least recently used
// trace.
type Memory struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

// NewMemory returns a cache holding at most capacity traces; capacity < 1 is
// treated as 1.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (m *Memory) Get(_ context.Context, key string) (trace.Trace, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	m.order.MoveToFront(el)
	return el.Value.(*entry).tr.Clone(), true, nil
}

func (m *Memory) Put(_ context.Context, key string, tr trace.Trace) error {
	if len(tr) == 0 {
		return trace.ErrEmptyTrace
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key]; ok {
		el.Value.(*entry).tr = tr.Clone()
		m.order.MoveToFront(el)
		return nil
	}

	m.items[key] = m.order.PushFront(&entry{key: key, tr: tr.Clone()})
	for m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*entry).key)
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Generate serves cfg from store when possible and fills it otherwise. hit
// reports whether the trace came from the cache. Cache failures are logged to
// log and fall through to generation; log may be nil.
func Generate(ctx context.Context, store Store, r *experiment.Registry, cfg experiment.Config, log *slog.Logger) (res *experiment.Result, hit bool, err error) {
	if store == nil {
		res, err = experiment.Generate(ctx, r, cfg)
		return res, false, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	key := Key(cfg)
	tr, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warn("trace cache get failed", "key", key, "error", err)
	}
	if err == nil && ok {
		gen, err := r.Get(cfg.Algorithm)
		if err != nil {
			return nil, false, err
		}
		cfg.Algorithm = gen.Name()
		res := &experiment.Result{Config: cfg, Trace: tr, Metrics: make(map[string]float64)}
		for _, m := range r.DefaultMetrics(cfg.Algorithm) {
			for _, s := range tr {
				m.Observe(s)
			}
			res.Metrics[m.Name()] = m.Value()
		}
		return res, true, nil
	}

	res, err = experiment.Generate(ctx, r, cfg)
	if err != nil {
		return nil, false, err
	}
	if err := store.Put(ctx, key, res.Trace); err != nil {
		log.Warn("trace cache put failed", "key", key, "error", err)
	}
	return res, false, nil
}
