package mailer

import (
	"context"
	"errors"
	"sync"

	"passreset/internal/logger"

	"go.uber.org/zap"
)

var ErrQueueClosed = errors.New("mailer: queue closed")

type job struct {
	ctx    context.Context
	msg    Message
	result chan error
}

// Queue ограничивает число одновременных SMTP/SES-соединений пулом воркеров.
// Send ждёт, пока воркер не вернёт результат отправки.
type Queue struct {
	next Mailer
	jobs chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(next Mailer, workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}
	q := &Queue{next: next, jobs: make(chan job, size)}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		err := q.next.Send(j.ctx, j.msg)
		if err != nil {
			logger.Log.Error("Не удалось отправить письмо", zap.String("to", logger.MaskEmail(j.msg.To)), zap.Error(err))
		}
		j.result <- err
	}
}

func (q *Queue) Send(ctx context.Context, msg Message) error {
	j := job{ctx: ctx, msg: msg, result: make(chan error, 1)}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	select {
	case q.jobs <- j:
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}
	q.mu.RUnlock()

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close перестаёт принимать письма и дожидается уже поставленных в очередь.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
