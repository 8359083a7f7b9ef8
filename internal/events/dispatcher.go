package events

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrDispatcherClosed возвращается при публикации после остановки
var ErrDispatcherClosed = errors.New("events: dispatcher is closed")

// Handler обработчик события (отправка письма и т.п.)
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc адаптер функции к Handler
type HandlerFunc func(ctx context.Context, e Event) error

// Handle вызывает f(ctx, e)
func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder приемник метрик уведомлений
type Recorder interface {
	IncNotification(event string, err error)
}

// Dispatcher обрабатывает события после фиксации: ограниченная очередь и фиксированное число воркеров.
// Ошибки обработчика логируются и считаются, в запрос они не возвращаются.
type Dispatcher struct {
	handler        Handler
	queue          chan Event
	workers        int
	handlerTimeout time.Duration
	logger         Logger
	recorder       Recorder

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер; recorder может быть nil
func NewDispatcher(handler Handler, queueSize, workers int, handlerTimeout time.Duration, logger Logger, recorder Recorder) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		handler:        handler,
		queue:          make(chan Event, queueSize),
		workers:        workers,
		handlerTimeout: handlerTimeout,
		logger:         logger,
		recorder:       recorder,
	}
}

// Start запускает воркеры
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Publish ставит события в очередь без блокировки.
// При переполненной очереди событие отбрасывается с записью в лог.
func (d *Dispatcher) Publish(list List) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	for _, e := range list {
		select {
		case d.queue <- e:
		default:
			d.logger.Error("Events: queue is full, dropping %s for appointment %s", e.Type, e.Appointment.ID)
			d.record(e.Type, errors.New("queue full"))
		}
	}
	return nil
}

// Shutdown закрывает очередь и ждет обработки оставшихся событий или отмены ctx
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for e := range d.queue {
		d.handle(e)
	}
}

func (d *Dispatcher) handle(e Event) {
	ctx := context.Background()
	if d.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.handlerTimeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("Events: handler panicked on %s for appointment %s: %v", e.Type, e.Appointment.ID, p)
			d.record(e.Type, errors.New("panic"))
		}
	}()

	err := d.handler.Handle(ctx, e)
	if err != nil {
		d.logger.Error("Events: failed to handle %s for appointment %s: %v", e.Type, e.Appointment.ID, err)
	} else {
		d.logger.Info("Events: handled %s for appointment %s", e.Type, e.Appointment.ID)
	}
	d.record(e.Type, err)
}

func (d *Dispatcher) record(t Type, err error) {
	if d.recorder == nil {
		return
	}
	d.recorder.IncNotification(string(t), err)
}
