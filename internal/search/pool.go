package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/latsq/internal/cycles"
	"github.com/roach88/latsq/internal/latin"
)

const defaultBatch = 1000

// Pool runs the main-class enumeration across a bounded set of
// workers. Each worker owns a disjoint subtree rooted at a unique
// three-row prefix (the fixed identity row plus two chosen rows), so
// no two workers can produce the same class and no deduplication is
// needed. Results are handed to the emit callback
// in batches under an exclusive lock; ordering between subtrees is
// unspecified.
type Pool struct {
	lookup  *cycles.Lookup
	workers int
	batch   int
	log     *slog.Logger
}

// NewPool returns a pool over the given cycle table. workers <= 0
// selects GOMAXPROCS; logger nil selects slog.Default.
func NewPool(lookup *cycles.Lookup, workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{lookup: lookup, workers: workers, batch: defaultBatch, log: logger}
}

// Run enumerates every main-class representative of order
// lookup.Order() and passes them to emit in batches. emit is never
// called concurrently. Run returns the first emit error, or the
// context error if cancelled.
func (p *Pool) Run(ctx context.Context, emit func([]latin.Square) error) error {
	run := uuid.Must(uuid.NewV7()).String()
	n := p.lookup.Order()
	p.log.Info("main class enumeration started", "run", run, "order", n, "workers", p.workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex // serialises emit
		errOnce sync.Once
		runErr  error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			runErr = err
			cancel()
		})
	}

	subtrees := make(chan *RowPartial)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range subtrees {
				if err := p.runSubtree(ctx, seed, emit, &mu); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	err := p.dispatch(ctx, subtrees, emit, &mu)
	close(subtrees)
	wg.Wait()

	if runErr != nil {
		p.log.Error("main class enumeration failed", "run", run, "error", runErr)
		return runErr
	}
	if err != nil {
		p.log.Error("main class enumeration failed", "run", run, "error", err)
		return err
	}
	p.log.Info("main class enumeration finished", "run", run)
	return nil
}

// dispatch walks the top of the row-by-row search tree and hands each
// three-row prefix to a worker. Orders small enough to complete before
// the fan-out depth are emitted directly.
func (p *Pool) dispatch(ctx context.Context, subtrees chan<- *RowPartial, emit func([]latin.Square) error, mu *sync.Mutex) error {
	stack := []*rowGen{newRowGen(NewRowPartial(p.lookup.Order()), p.lookup)}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		sq, ok := top.next()
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if sq.IsComplete() {
			full, _ := sq.Square()
			if full.IsMainClassMinimal(p.lookup) {
				mu.Lock()
				err := emit([]latin.Square{full})
				mu.Unlock()
				if err != nil {
					return err
				}
			}
			continue
		}
		if len(stack) <= 1 {
			stack = append(stack, newRowGen(sq, p.lookup))
			continue
		}
		select {
		case subtrees <- sq:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *Pool) runSubtree(ctx context.Context, seed *RowPartial, emit func([]latin.Square) error, mu *sync.Mutex) error {
	flush := func(batch []latin.Square) error {
		if len(batch) == 0 {
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		return emit(batch)
	}

	batch := make([]latin.Square, 0, p.batch)
	stack := []*rowGen{newRowGen(seed, p.lookup)}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		sq, ok := top.next()
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if sq.IsComplete() {
			full, _ := sq.Square()
			if full.IsMainClassMinimal(p.lookup) {
				batch = append(batch, full)
				if len(batch) >= p.batch {
					if err := flush(batch); err != nil {
						return err
					}
					batch = make([]latin.Square, 0, p.batch)
				}
			}
			continue
		}
		stack = append(stack, newRowGen(sq, p.lookup))
	}
	return flush(batch)
}
