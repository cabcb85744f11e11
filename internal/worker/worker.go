package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ignisml/ignis/internal/features"
	"github.com/ignisml/ignis/internal/model"
)

// ErrPoolStopped is returned for submissions that arrive while or after
// the pool shuts down.
var ErrPoolStopped = errors.New("inference pool stopped")

// Inferencer evaluates one feature vector. *model.Predictor satisfies it.
type Inferencer interface {
	Predict(v features.Vector) (model.Result, error)
}

// Outcome is the terminal state of one inference job.
type Outcome struct {
	Result model.Result
	Err    error
}

type job struct {
	vector features.Vector
	reply  chan Outcome
}

// Pool runs ensemble inference on a bounded set of workers so model
// evaluation never blocks concurrent weather fetches. The jobs channel
// is never closed; shutdown is signalled through done, so a late Infer
// gets ErrPoolStopped instead of a send on a closed channel.
type Pool struct {
	numWorkers int
	jobs       chan job
	inferencer Inferencer
	wg         sync.WaitGroup
	done       chan struct{}
	stopOnce   sync.Once
}

func NewPool(numWorkers int, bufferSize int, inf Inferencer) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan job, bufferSize),
		inferencer: inf,
		done:       make(chan struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case j := <-p.jobs:
			res, err := p.inferencer.Predict(j.vector)
			j.reply <- Outcome{Result: res, Err: err}
		}
	}
}

// Infer submits a vector and waits for its outcome.
func (p *Pool) Infer(ctx context.Context, v features.Vector) (model.Result, error) {
	j := job{vector: v, reply: make(chan Outcome, 1)}

	select {
	case p.jobs <- j:
	case <-p.done:
		return model.Result{}, ErrPoolStopped
	case <-ctx.Done():
		return model.Result{}, ctx.Err()
	}

	select {
	case out := <-j.reply:
		return out.Result, out.Err
	case <-p.done:
		return model.Result{}, ErrPoolStopped
	case <-ctx.Done():
		return model.Result{}, ctx.Err()
	}
}

// Stop is idempotent and safe to call with submissions still in flight.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
	p.wg.Wait()
}
