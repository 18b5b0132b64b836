package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"

	queue "github.com/redstonehub/laurel/internal/adapters/mq/queue"
	worker "github.com/redstonehub/laurel/internal/adapters/mq/worker"
	model "github.com/redstonehub/laurel/internal/domain/model"
	logging "github.com/redstonehub/laurel/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logging.Init(); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

type fakeRefresher struct {
	mu    sync.Mutex
	calls []model.Filters
	fail  map[string]error
	seen  chan struct{}
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{fail: make(map[string]error), seen: make(chan struct{}, 64)}
}

func (f *fakeRefresher) Refresh(_ context.Context, _ model.Kind, filters model.Filters) error {
	f.mu.Lock()
	f.calls = append(f.calls, filters)
	err := f.fail[filters.Month]
	f.mu.Unlock()
	f.seen <- struct{}{}
	return err
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitFor(ch <-chan struct{}, n int) bool {
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-deadline:
			return false
		}
	}
	return true
}

func TestPoolRefreshesQueuedJobs(t *testing.T) {
	convey.Convey("Given a pool of two workers on an in-memory queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		r := newFakeRefresher()
		pool := worker.NewPool(2, q, r)
		pool.Start(context.Background())

		convey.Convey("When three jobs are enqueued", func() {
			for _, m := range []string{"May", "June", "July"} {
				ok := q.Enqueue(context.Background(), queue.Job{
					Kind:    model.KindHof,
					Filters: model.Filters{Month: m, Year: 2025},
					Reason:  "create",
				})
				convey.So(ok, convey.ShouldBeTrue)
			}

			convey.Convey("Then every job is refreshed once", func() {
				convey.So(waitFor(r.seen, 3), convey.ShouldBeTrue)
				convey.So(r.count(), convey.ShouldEqual, 3)
				convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
				convey.So(pool.Processed(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When a refresh fails", func() {
			r.fail["June"] = errors.New("store down")
			q.Enqueue(context.Background(), queue.Job{Kind: model.KindWbc, Filters: model.Filters{Month: "June"}})
			q.Enqueue(context.Background(), queue.Job{Kind: model.KindWbc, Filters: model.Filters{Month: "July"}})

			convey.Convey("Then the worker keeps going and only successes count", func() {
				convey.So(waitFor(r.seen, 2), convey.ShouldBeTrue)
				convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
				convey.So(pool.Processed(), convey.ShouldEqual, 1)
			})
		})

		convey.Reset(func() {
			_ = pool.Shutdown(context.Background())
		})
	})
}

func TestPoolDefaults(t *testing.T) {
	convey.Convey("Given a non-positive worker count", t, func() {
		q := queue.NewInMemoryQueue()
		pool := worker.NewPool(0, q, newFakeRefresher())

		convey.Convey("Then the default size is used", func() {
			convey.So(pool.Size(), convey.ShouldEqual, 2)
		})

		convey.Convey("Then shutdown without start closes the queue", func() {
			convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
			convey.So(q.IsClosed(), convey.ShouldBeTrue)
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	convey.Convey("Given a single running worker", t, func() {
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, newFakeRefresher(), worker.WithName("solo"), worker.WithLogger(logging.Nop()))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When it is shut down", func() {
			err := w.Shutdown(context.Background())

			convey.Convey("Then it stops without error and can be shut down again", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(w.Shutdown(context.Background()), convey.ShouldBeNil)
				convey.So(q.Close(), convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given a worker that never started", t, func() {
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, newFakeRefresher())

		convey.Convey("When shutdown has an expired deadline", func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
			defer cancel()
			<-ctx.Done()
			err := w.Shutdown(ctx)

			convey.Convey("Then it reports a timeout", func() {
				convey.So(errors.Is(err, worker.ErrShutdownTimeout), convey.ShouldBeTrue)
			})
		})
	})
}
