package dispatch

import (
	"time"

	"github.com/amirasaad/compago/pkg/clock"
)

type jobState int

const (
	jobPending jobState = iota
	jobRan
	jobCancelled
)

// Job is a deferred function scheduled on a Loop.
type Job struct {
	loop  *Loop
	timer clock.Timer
	fn    func()
	due   time.Time
	state jobState // guarded by loop.mu
	done  chan struct{}
}

// Due returns when the job is expected to run.
func (j *Job) Due() time.Time { return j.due }

// Done is closed once the job has run or been cancelled.
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel prevents the job from running. It reports false if the job already started
// or was cancelled before.
func (j *Job) Cancel() bool {
	l := j.loop
	l.mu.Lock()
	if j.state != jobPending {
		l.mu.Unlock()
		return false
	}
	j.state = jobCancelled
	delete(l.jobs, j)
	timer := j.timer
	l.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	close(j.done)
	return true
}

// fire runs on the loop goroutine when the timer expires.
func (j *Job) fire() {
	l := j.loop
	l.mu.Lock()
	if j.state != jobPending {
		l.mu.Unlock()
		return
	}
	j.state = jobRan
	delete(l.jobs, j)
	l.mu.Unlock()

	defer close(j.done)
	l.exec(j.fn)
}
