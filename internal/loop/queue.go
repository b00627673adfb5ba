// Package loop provides the single-threaded task queue hosts drain once per
// iteration of their event loop. Deferred viewport work (layout retries,
// applying the initial scale) is posted here.
package loop

// Queue is a FIFO of deferred tasks. It is not safe for concurrent use: tasks
// are posted and drained from the host's main goroutine only.
type Queue struct {
	tasks []func()
	ran   int
}

func NewQueue() *Queue { return &Queue{} }

// Post schedules task for the next Drain.
func (q *Queue) Post(task func()) {
	q.tasks = append(q.tasks, task)
}

// Drain runs the tasks that were pending when it was called and returns how
// many ran. Tasks posted while draining run on the next call, so a task that
// re-posts itself runs once per tick rather than spinning.
func (q *Queue) Drain() int {
	pending := q.tasks
	q.tasks = nil
	for _, task := range pending {
		task()
	}
	q.ran += len(pending)
	return len(pending)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int { return len(q.tasks) }

// Ran returns the total number of tasks run so far.
func (q *Queue) Ran() int { return q.ran }
