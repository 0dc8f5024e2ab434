// Package parallel runs independent solver tasks concurrently. The
// solver engine itself is single-threaded; this package only fans out
// whole searches (for example the descending and the ascending digit
// search over one program), which share nothing mutable.
package parallel

import (
	"context"
	"sync"
)

// Group runs tasks on a bounded set of workers and collects the first
// error. The zero value is not usable; create groups with NewGroup.
type Group struct {
	sem chan struct{}
	wg  sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewGroup creates a group that runs at most maxWorkers tasks at once.
// maxWorkers below 1 means no limit.
func NewGroup(maxWorkers int) *Group {
	g := &Group{}
	if maxWorkers > 0 {
		g.sem = make(chan struct{}, maxWorkers)
	}
	return g
}

// Go schedules a task. Tasks receive the group's context error handling
// indirectly: a task that fails records the first error, and callers
// typically cancel their shared context in response if they want the
// siblings to stop early.
func (g *Group) Go(ctx context.Context, task func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if g.sem != nil {
			select {
			case g.sem <- struct{}{}:
				defer func() { <-g.sem }()
			case <-ctx.Done():
				g.record(ctx.Err())
				return
			}
		}
		if err := task(ctx); err != nil {
			g.record(err)
		}
	}()
}

// Wait blocks until every scheduled task has finished and returns the
// first recorded error, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Group) record(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
	}
}
