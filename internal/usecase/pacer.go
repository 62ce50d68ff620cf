package usecase

import (
	"context"
	"sync"
	"time"
)

// Pacer é um token bucket que espaça os envios em lote para respeitar
// o throughput do gateway. É cooperação, não exclusão mútua: a
// serialização do lote vem do próprio loop do driver.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	burst    float64
	tokens   float64
	last     time.Time
}

// NewPacer cria um pacer que libera um envio a cada interval, com
// capacidade para burst envios imediatos após ociosidade.
func NewPacer(interval time.Duration, burst int) *Pacer {
	if burst < 1 {
		burst = 1
	}
	return &Pacer{
		interval: interval,
		burst:    float64(burst),
		tokens:   float64(burst),
		last:     time.Now(),
	}
}

// Wait bloqueia até haver um token disponível ou o contexto encerrar.
func (p *Pacer) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		p.refill()
		if p.tokens >= 1 {
			p.tokens--
			p.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - p.tokens) * float64(p.interval))
		p.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *Pacer) refill() {
	now := time.Now()
	if p.interval <= 0 {
		p.tokens = p.burst
		p.last = now
		return
	}

	elapsed := now.Sub(p.last)
	p.tokens += float64(elapsed) / float64(p.interval)
	if p.tokens > p.burst {
		p.tokens = p.burst
	}
	p.last = now
}
