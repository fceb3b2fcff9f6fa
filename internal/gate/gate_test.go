package gate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/job-scout/internal/vacancy"
)

type stubLedger struct {
	free   bool
	marked []string
}

func (s *stubLedger) CanUseFree(int64, string) bool {
	return s.free
}

func (s *stubLedger) MarkFreeUsed(_ int64, action string) error {
	s.marked = append(s.marked, action)
	return nil
}

type stubGenerator struct {
	gotPrompt    string
	gotMaxTokens int
	reply        string
	err          error
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string, maxTokens int) (string, error) {
	s.gotPrompt = prompt
	s.gotMaxTokens = maxTokens

	return s.reply, s.err
}

func testVacancy() *vacancy.Vacancy {
	return &vacancy.Vacancy{
		ID:          "hh_1",
		Name:        "Менеджер проектов",
		Employer:    vacancy.Employer{Name: "Яндекс"},
		Description: "Ведение проектов, <b>работа с командой</b>",
	}
}

func TestDecideFreeQuota(t *testing.T) {
	t.Parallel()

	ledger := &stubLedger{free: true}
	g := New(ledger, &stubGenerator{}, zap.NewNop())

	invoice, err := g.Decide(42, ActionCover)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if invoice != nil {
		t.Fatalf("invoice = %+v, want nil while quota remains", invoice)
	}
	if len(ledger.marked) != 1 || ledger.marked[0] != ActionCover {
		t.Errorf("marked = %v", ledger.marked)
	}
}

func TestDecideExhaustedQuota(t *testing.T) {
	t.Parallel()

	g := New(&stubLedger{free: false}, &stubGenerator{}, zap.NewNop())

	tests := []struct {
		action      string
		wantPayload string
	}{
		{ActionCover, PayloadCover},
		{ActionAdapt, PayloadAdapt},
	}

	for _, tc := range tests {
		invoice, err := g.Decide(42, tc.action)
		if err != nil {
			t.Fatalf("Decide(%s): %v", tc.action, err)
		}
		if invoice == nil {
			t.Fatalf("Decide(%s): expected invoice", tc.action)
		}
		if invoice.Payload != tc.wantPayload {
			t.Errorf("payload = %s, want %s", invoice.Payload, tc.wantPayload)
		}
		if invoice.Amount != InvoiceAmount || invoice.Currency != "XTR" {
			t.Errorf("invoice = %+v", invoice)
		}
	}
}

func TestDecideUnknownAction(t *testing.T) {
	t.Parallel()

	g := New(&stubLedger{free: false}, &stubGenerator{}, zap.NewNop())
	if _, err := g.Decide(42, "translate"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestExecuteCover(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "Готовое письмо."}
	g := New(&stubLedger{}, gen, zap.NewNop())

	got, err := g.ExecuteCover(context.Background(), testVacancy(), "Опытный менеджер проектов")
	if err != nil {
		t.Fatalf("ExecuteCover: %v", err)
	}
	if got != "Готовое письмо." {
		t.Errorf("artifact = %q", got)
	}
	if gen.gotMaxTokens != 800 {
		t.Errorf("max tokens = %d", gen.gotMaxTokens)
	}
	if !strings.Contains(gen.gotPrompt, "Менеджер проектов") || !strings.Contains(gen.gotPrompt, "Яндекс") {
		t.Errorf("prompt missing vacancy data: %q", gen.gotPrompt)
	}
	if strings.Contains(gen.gotPrompt, "<b>") {
		t.Errorf("prompt must not carry html: %q", gen.gotPrompt)
	}
}

func TestExecuteRequiresSessionData(t *testing.T) {
	t.Parallel()

	g := New(&stubLedger{}, &stubGenerator{}, zap.NewNop())

	if _, err := g.ExecuteCover(context.Background(), nil, "резюме"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("nil vacancy: err = %v", err)
	}
	if _, err := g.ExecuteAdapt(context.Background(), testVacancy(), ""); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("empty resume: err = %v", err)
	}
}

func TestHandlePayment(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "Правки по резюме."}
	g := New(&stubLedger{}, gen, zap.NewNop())

	got, err := g.HandlePayment(context.Background(), PayloadAdapt, testVacancy(), "резюме кандидата")
	if err != nil {
		t.Fatalf("HandlePayment: %v", err)
	}
	if got != "Правки по резюме." {
		t.Errorf("artifact = %q", got)
	}
	if gen.gotMaxTokens != 1000 {
		t.Errorf("max tokens = %d", gen.gotMaxTokens)
	}

	// Access payloads acknowledge without an artifact.
	got, err = g.HandlePayment(context.Background(), PayloadPaidAccess, nil, "")
	if err != nil || got != "" {
		t.Errorf("paid_access: got %q, err %v", got, err)
	}

	if _, err := g.HandlePayment(context.Background(), "mystery", nil, ""); !errors.Is(err, ErrUnknownPayload) {
		t.Errorf("unknown payload: err = %v", err)
	}
}
