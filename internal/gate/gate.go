// Package gate decides whether an AI generation runs for free or has to
// be paid for first, and executes the generation itself.
package gate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-scout/internal/ai"
	"github.com/spigell/job-scout/internal/stats"
	"github.com/spigell/job-scout/internal/vacancy"
)

const (
	ActionCover = stats.ActionCover
	ActionAdapt = stats.ActionAdapt

	// Payment payloads carried through the invoice round trip.
	PayloadCover      = "cover"
	PayloadAdapt      = "adapt"
	PayloadPaidAccess = "paid_access"
	PayloadHRAnalysis = "HR_ANALYSIS_100"

	InvoiceAmount   = 5
	InvoiceCurrency = "XTR"
)

var (
	ErrSessionExpired = errors.New("session data is missing, the flow has to restart")
	ErrUnknownPayload = errors.New("unknown payment payload")
)

// Invoice describes a payment request for an exhausted free quota.
type Invoice struct {
	Title       string
	Description string
	Payload     string
	Currency    string
	Amount      int
}

// quotaLedger is the slice of the stats ledger the gate needs.
type quotaLedger interface {
	CanUseFree(userID int64, action string) bool
	MarkFreeUsed(userID int64, action string) error
}

type Gate struct {
	ledger    quotaLedger
	generator ai.Generator
	logger    *zap.Logger
}

func New(ledger quotaLedger, generator ai.Generator, logger *zap.Logger) *Gate {
	return &Gate{
		ledger:    ledger,
		generator: generator,
		logger:    logger,
	}
}

// Decide consumes free quota when the user still has it and returns a nil
// invoice, meaning the generation may run immediately. An exhausted quota
// yields the invoice to present instead.
func (g *Gate) Decide(userID int64, action string) (*Invoice, error) {
	if g.ledger.CanUseFree(userID, action) {
		if err := g.ledger.MarkFreeUsed(userID, action); err != nil {
			return nil, fmt.Errorf("marking free quota: %w", err)
		}
		return nil, nil
	}

	g.logger.Info("free quota exhausted, issuing invoice",
		zap.Int64("user_id", userID),
		zap.String("action", action),
	)

	switch action {
	case ActionCover:
		return &Invoice{
			Title:       "Сопроводительное письмо (AI)",
			Description: "Генерация сопроводительного письма под выбранную вакансию",
			Payload:     PayloadCover,
			Currency:    InvoiceCurrency,
			Amount:      InvoiceAmount,
		}, nil
	case ActionAdapt:
		return &Invoice{
			Title:       "Адаптация резюме (AI)",
			Description: "Рекомендации по адаптации резюме под выбранную вакансию в формате БЫЛО/СТАЛО",
			Payload:     PayloadAdapt,
			Currency:    InvoiceCurrency,
			Amount:      InvoiceAmount,
		}, nil
	}

	return nil, fmt.Errorf("unknown action: %s", action)
}

// ExecuteCover generates a cover letter for the vacancy.
func (g *Gate) ExecuteCover(ctx context.Context, v *vacancy.Vacancy, resume string) (string, error) {
	if v == nil || resume == "" {
		return "", ErrSessionExpired
	}

	return g.generator.GenerateContent(ctx, ai.CoverPrompt(v, resume), ai.CoverMaxTokens)
}

// ExecuteAdapt generates resume edit recommendations for the vacancy.
func (g *Gate) ExecuteAdapt(ctx context.Context, v *vacancy.Vacancy, resume string) (string, error) {
	if v == nil || resume == "" {
		return "", ErrSessionExpired
	}

	return g.generator.GenerateContent(ctx, ai.AdaptPrompt(v, resume), ai.AdaptMaxTokens)
}

// HandlePayment runs the generation a successful payment was for.
// The access payloads have no deliverable artifact and return an empty
// string together with a nil error.
func (g *Gate) HandlePayment(ctx context.Context, payload string, v *vacancy.Vacancy, resume string) (string, error) {
	switch payload {
	case PayloadCover:
		return g.ExecuteCover(ctx, v, resume)
	case PayloadAdapt:
		return g.ExecuteAdapt(ctx, v, resume)
	case PayloadPaidAccess, PayloadHRAnalysis:
		g.logger.Info("access payment acknowledged", zap.String("payload", payload))
		return "", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownPayload, payload)
}
