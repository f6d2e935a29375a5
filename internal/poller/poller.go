package poller

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Refresher - то, что опрашивается по таймеру
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Poller вызывает Refresh сразу после запуска и затем с фиксированным интервалом.
// Ни джиттера, ни отступа при ошибках: ошибки логирует сам Refresher.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	clock     clockwork.Clock
	logger    *logrus.Logger

	wg sync.WaitGroup
}

// New создает Poller; clock == nil означает реальные часы
func New(refresher Refresher, interval time.Duration, clock clockwork.Clock, logger *logrus.Logger) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		refresher: refresher,
		interval:  interval,
		clock:     clock,
		logger:    logger,
	}
}

// Start запускает горутину опроса; она завершается при отмене ctx
func (p *Poller) Start(ctx context.Context) {
	p.logger.WithField("interval", p.interval.String()).Info("Starting report poller...")
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()
}

// Wait блокируется до остановки горутины опроса
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	p.poll(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping report poller.")
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.refresher.Refresh(ctx); err != nil {
		p.logger.WithError(err).Debug("Poll cycle failed")
	}
}
