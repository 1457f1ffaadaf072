package processor

import (
	"context"
	"log"

	"makonmed/stock-worker-service/internal/app/stock-worker/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает сверку остатков по расписанию
type CronScheduler struct {
	cron              *cron.Cron
	reconciliationSvc service.ReconciliationServiceInterface
}

// NewCronScheduler создает новый планировщик
func NewCronScheduler(reconciliationSvc service.ReconciliationServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:              c,
		reconciliationSvc: reconciliationSvc,
	}
}

// Start регистрирует задачу сверки и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: reconciling stock")

		if err := s.reconciliationSvc.Reconcile(ctx); err != nil {
			log.Printf("ERROR: Stock reconciliation failed: %v", err)
		} else {
			log.Println("Cron job completed: stock reconciliation finished")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	return nil
}

// Stop останавливает планировщик, дожидаясь текущих задач
func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

// GetEntries возвращает зарегистрированные задачи
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
