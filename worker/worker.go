package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}
		run(f)
	}
}

func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to run on a worker. To be used by a function that may be CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}

// Wait runs every function on the workers and blocks until all of them returned. A function that
// panics is reported to sentry and counts as returned.
func Wait(fs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(fs))
	for _, f := range fs {
		Submit(func() {
			defer wg.Done()
			f()
		})
	}
	wg.Wait()
}
