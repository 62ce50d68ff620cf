package worker

import (
	"context"
	"log"
	"time"

	"github.com/allycar/outreach/internal/usecase"
)

// OutreachScheduler roda o disparo em lote periodicamente, em segundo
// plano. O filtro de horário comercial fica no próprio driver, então
// rodadas fora de janela apenas pulam os leads.
type OutreachScheduler struct {
	runner       *usecase.RunOutreachUseCase
	tickInterval time.Duration
}

func NewOutreachScheduler(runner *usecase.RunOutreachUseCase, tickInterval time.Duration) *OutreachScheduler {
	return &OutreachScheduler{
		runner:       runner,
		tickInterval: tickInterval,
	}
}

func (w *OutreachScheduler) Start(ctx context.Context) {
	log.Printf("🕒 Outreach Scheduler iniciado (a cada %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Outreach Scheduler encerrado")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *OutreachScheduler) runOnce(ctx context.Context) {
	report, err := w.runner.Run(ctx)
	if err != nil {
		log.Printf("❌ [SCHEDULER] Rodada falhou: %v", err)
		return
	}
	log.Printf("✅ [SCHEDULER] Rodada %s concluída: %d enviados", report.RunID, report.Sent)
}
