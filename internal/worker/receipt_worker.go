package worker

// Processes receipt jobs from QueueReceipts: loads the sale, renders the
// ticket PDF and emails it to the customer. SMTP is guarded by a circuit
// breaker so a dead relay does not stall the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"andespos/internal/infra"
	"andespos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJob is the payload enqueued after a sale with a receipt email.
type ReceiptJob struct {
	SaleID    string `json:"sale_id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
}

// ReceiptWorker turns a committed sale into a PDF receipt email.
type ReceiptWorker struct {
	sales     repository.SaleRepository
	companies repository.CompanyRepository
	mailer    *infra.Mailer
	breaker   *infra.CircuitBreaker
}

func NewReceiptWorker(
	sales repository.SaleRepository,
	companies repository.CompanyRepository,
	mailer *infra.Mailer,
	breaker *infra.CircuitBreaker,
) *ReceiptWorker {
	return &ReceiptWorker{sales: sales, companies: companies, mailer: mailer, breaker: breaker}
}

// Process renders and sends the receipt. Failures are logged, not retried:
// the receipt is a courtesy copy, the sale is already committed.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var job ReceiptJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	if job.Email == "" {
		log.Warn().Msg("receipt_worker: empty email, skipping")
		return
	}
	saleID, err := uuid.Parse(job.SaleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", job.SaleID).Msg("receipt_worker: bad sale id")
		return
	}
	companyID, err := uuid.Parse(job.CompanyID)
	if err != nil {
		log.Error().Err(err).Str("company_id", job.CompanyID).Msg("receipt_worker: bad company id")
		return
	}

	sale, err := w.sales.FindByID(ctx, companyID, saleID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", job.SaleID).Msg("receipt_worker: sale lookup failed")
		return
	}

	companyName := "Receipt"
	if company, err := w.companies.FindByID(ctx, companyID); err == nil {
		companyName = company.Name
	}

	pdf, err := infra.RenderTicketPDF(companyName, sale)
	if err != nil {
		log.Error().Err(err).Str("sale_id", job.SaleID).Msg("receipt_worker: pdf render failed")
		return
	}

	subject := fmt.Sprintf("%s - your receipt", companyName)
	body := fmt.Sprintf("Thank you for your purchase. Your receipt for %s is attached.",
		sale.Total.StringFixed(2))
	filename := fmt.Sprintf("receipt-%s.pdf", job.SaleID[:8])

	err = w.breaker.Execute(func() error {
		return w.mailer.SendReceipt(job.Email, subject, body, pdf, filename)
	})
	if err != nil {
		log.Error().Err(err).Str("to", job.Email).Msg("receipt_worker: send failed")
		return
	}
	log.Info().Str("to", job.Email).Str("sale_id", job.SaleID).Msg("receipt_worker: receipt sent")
}
