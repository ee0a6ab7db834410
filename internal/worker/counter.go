package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// queueSize размер очереди инкрементов. При переполнении инкременты
// отбрасываются: счетчик переходов best-effort и не должен блокировать редирект.
// flushInterval период сброса накопленных инкрементов в хранилище.
// flushThreshold количество кодов в батче, при котором сброс происходит досрочно.
// flushTimeout таймаут одного сброса.
const (
	queueSize      = 1024
	flushInterval  = 5 * time.Second
	flushThreshold = 100
	flushTimeout   = 3 * time.Second
)

// LinkCounterRepo часть репозитория ссылок, нужная воркеру.
type LinkCounterRepo interface {
	IncrementAccessCount(ctx context.Context, shortCode string, delta uint64) error
}

// AccessCountWorker фоновый воркер инкремента счетчика переходов.
//
// Инкременты накапливаются в батч (код -> дельта) и периодически сбрасываются
// в хранилище атомарным обновлением. Семантика best-effort: неудачный сброс
// логируется и батч отбрасывается, ошибка никогда не доходит до клиента.
type AccessCountWorker struct {
	in     chan string
	logger *zap.Logger
	repo   LinkCounterRepo
}

func NewAccessCountWorker(logger *zap.Logger, repo LinkCounterRepo) *AccessCountWorker {
	return &AccessCountWorker{
		in:     make(chan string, queueSize),
		logger: logger.With(zap.String("module", "worker/counter")),
		repo:   repo,
	}
}

// Enqueue ставит инкремент в очередь. Никогда не блокирует вызывающего:
// при заполненной очереди инкремент отбрасывается с записью в лог.
func (w *AccessCountWorker) Enqueue(shortCode string) {
	select {
	case w.in <- shortCode:
	default:
		w.logger.Warn("queue is full, dropping increment", zap.String("shortCode", shortCode))
	}
}

// Run запускает цикл воркера. Блокирует до отмены ctx; перед выходом сбрасывает
// накопленный батч на свежем контексте - инкременты, поставленные в очередь до
// остановки, должны попасть в хранилище даже если исходный запрос уже отменен.
func (w *AccessCountWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	pending := make(map[string]uint64)

	for {
		select {
		case <-ctx.Done():
			w.drain(pending)
			w.flush(context.Background(), pending)
			return
		case shortCode := <-w.in:
			pending[shortCode]++
			if len(pending) >= flushThreshold {
				w.flush(context.Background(), pending)
			}
		case <-ticker.C:
			w.flush(context.Background(), pending)
		}
	}
}

// drain выгребает из очереди всё, что успели поставить до остановки.
func (w *AccessCountWorker) drain(pending map[string]uint64) {
	for {
		select {
		case shortCode := <-w.in:
			pending[shortCode]++
		default:
			return
		}
	}
}

// flush сбрасывает батч в хранилище и очищает его. Ошибки сброса логируются,
// батч в этом случае теряется.
func (w *AccessCountWorker) flush(ctx context.Context, pending map[string]uint64) {
	if len(pending) == 0 {
		return
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	for shortCode, delta := range pending {
		if err := w.repo.IncrementAccessCount(flushCtx, shortCode, delta); err != nil {
			w.logger.Error("failed to flush access count",
				zap.Error(err),
				zap.String("shortCode", shortCode),
				zap.Uint64("delta", delta),
			)
		}
		delete(pending, shortCode)
	}
}
