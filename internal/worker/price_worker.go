package worker

import (
	"context"
	"log"

	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/service"
	"github.com/robfig/cron/v3"
)

// PriceWorker periodically refreshes the cached lowest-BIN prices for every
// item currently held in inventory, so unrealized-profit figures stay close
// to the market without per-request fetches.
type PriceWorker struct {
	priceService  *service.PriceService
	inventoryRepo *repository.InventoryRepository
	schedule      string
	cron          *cron.Cron
}

// NewPriceWorker creates a new price refresh worker.
// schedule is a cron spec, e.g. "@hourly" or "*/30 * * * *".
func NewPriceWorker(
	priceService *service.PriceService,
	inventoryRepo *repository.InventoryRepository,
	schedule string,
) *PriceWorker {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &PriceWorker{
		priceService:  priceService,
		inventoryRepo: inventoryRepo,
		schedule:      schedule,
	}
}

// Start schedules the refresh job. Returns an error for a bad cron spec.
func (w *PriceWorker) Start() error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.refreshAll); err != nil {
		return err
	}
	w.cron.Start()
	log.Printf("Price worker started with schedule: %s", w.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (w *PriceWorker) Stop() {
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
		log.Println("Price worker stopped")
	}
}

func (w *PriceWorker) refreshAll() {
	names, err := w.inventoryRepo.DistinctItemNames()
	if err != nil {
		log.Printf("Price worker: failed to list held items: %v", err)
		return
	}
	if len(names) == 0 {
		return
	}

	refreshed := w.priceService.RefreshItems(context.Background(), names)
	log.Printf("Price worker: refreshed %d/%d item prices", refreshed, len(names))
}
