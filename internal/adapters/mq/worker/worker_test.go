package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/screener/internal/adapters/mq/queue"
	worker "github.com/okian/screener/internal/adapters/mq/worker"
	model "github.com/okian/screener/internal/domain/model"
	logging "github.com/okian/screener/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockRanker struct {
	err error
}

func (m *mockRanker) Rank(ctx context.Context, candidates []model.ResumeRecord, jd string) ([]model.RankedCandidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.RankedCandidate, len(candidates))
	for i, c := range candidates {
		out[i] = model.RankedCandidate{Rank: i + 1, ID: c.ID, Name: c.Name, Score: float64(90 - 10*i)}
	}
	return out, nil
}

type outcome struct {
	ranked  []model.RankedCandidate
	summary model.Summary
	reason  string
}

type mockResults struct {
	mu   sync.Mutex
	done map[string]outcome
	ch   chan string
}

func newMockResults() *mockResults {
	return &mockResults{done: make(map[string]outcome), ch: make(chan string, 16)}
}

func (m *mockResults) Complete(ctx context.Context, id string, ranked []model.RankedCandidate, summary model.Summary) error {
	m.mu.Lock()
	m.done[id] = outcome{ranked: ranked, summary: summary}
	m.mu.Unlock()
	m.ch <- id
	return nil
}

func (m *mockResults) Fail(ctx context.Context, id string, reason string) error {
	m.mu.Lock()
	m.done[id] = outcome{reason: reason}
	m.mu.Unlock()
	m.ch <- id
	return nil
}

func (m *mockResults) get(id string) outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done[id]
}

type mockPool struct {
	mu     sync.Mutex
	offers []string
}

func (m *mockPool) Offer(ctx context.Context, role string, c model.RankedCandidate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, role+"/"+c.ID)
	return true, nil
}

func (m *mockPool) list() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.offers...)
}

func wait(ch <-chan string) string {
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		return ""
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker over a queue", t, func() {
		_ = logging.Init()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		results := newMockResults()
		pool := &mockPool{}

		convey.Convey("When a role screening is ranked", func() {
			w := worker.NewInMemoryWorker(q, &mockRanker{}, results, pool, worker.WithName("w-1"))
			go w.Run(ctx)

			q.Enqueue(ctx, queue.Job{
				ID:   "s-1",
				Role: "Data Analyst",
				Candidates: []model.ResumeRecord{
					{ID: "a", Name: "Ann"},
					{ID: "b", Name: "Ben"},
				},
			})

			convey.Convey("Then the result and summary are stored", func() {
				convey.So(wait(results.ch), convey.ShouldEqual, "s-1")
				got := results.get("s-1")
				convey.So(len(got.ranked), convey.ShouldEqual, 2)
				convey.So(got.summary.Total, convey.ShouldEqual, 2)
				convey.So(got.summary.TopScore, convey.ShouldEqual, 90.0)
			})

			convey.Convey("Then every identified candidate is offered to the talent pool", func() {
				convey.So(wait(results.ch), convey.ShouldEqual, "s-1")
				convey.So(pool.list(), convey.ShouldResemble, []string{"Data Analyst/a", "Data Analyst/b"})
			})
		})

		convey.Convey("When a screening has no role", func() {
			w := worker.NewInMemoryWorker(q, &mockRanker{}, results, pool)
			go w.Run(ctx)

			q.Enqueue(ctx, queue.Job{ID: "s-2", Candidates: []model.ResumeRecord{{ID: "a"}}})

			convey.Convey("Then the talent pool is left alone", func() {
				convey.So(wait(results.ch), convey.ShouldEqual, "s-2")
				convey.So(pool.list(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When ranking fails", func() {
			w := worker.NewInMemoryWorker(q, &mockRanker{err: errors.New("boom")}, results, nil)
			go w.Run(ctx)

			q.Enqueue(ctx, queue.Job{ID: "s-3"})

			convey.Convey("Then the failure is recorded", func() {
				convey.So(wait(results.ch), convey.ShouldEqual, "s-3")
				convey.So(results.get("s-3").reason, convey.ShouldEqual, "boom")
			})
		})

		convey.Convey("When the queue closes", func() {
			w := worker.NewInMemoryWorker(q, &mockRanker{}, results, nil)
			go w.Run(ctx)
			_ = q.Close()

			convey.Convey("Then the worker stops", func() {
				select {
				case <-w.Done():
					convey.So(true, convey.ShouldBeTrue)
				case <-time.After(2 * time.Second):
					convey.So("worker still running", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		_ = logging.Init()
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(32))
		results := newMockResults()
		results.ch = make(chan string, 32)

		p := worker.NewPool(3, q, &mockRanker{}, results, nil)
		convey.So(p.Size(), convey.ShouldEqual, 3)
		p.Start(ctx)

		for _, id := range []string{"a", "b", "c", "d", "e"} {
			convey.So(q.Enqueue(ctx, queue.Job{ID: id}), convey.ShouldBeTrue)
		}

		convey.Convey("When shutting down", func() {
			sctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			err := p.Shutdown(sctx)

			convey.Convey("Then queued screenings are drained first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(results.ch), convey.ShouldEqual, 5)
			})
		})
	})
}
