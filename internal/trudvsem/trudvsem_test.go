package trudvsem

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "30" {
			t.Errorf("limit = %s, want 30", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestSearchMapping(t *testing.T) {
	t.Parallel()

	payload := `{"results":{"vacancies":[
		{"vacancy":{"id":"abc-123","job-name":"Инженер-программист","salary_min":90000,"salary_max":140000,
			"company":{"name":"Завод","companycode":"7701"},"region":{"name":"Москва"}}},
		{"vacancy":{"id":"def-456","job-name":"Слесарь","salary_min":0,"salary_max":0,
			"company":{"name":"Цех","companycode":"7702"},"region":{"name":"Тула"}}}
	]}}`

	client := New(zap.NewNop())
	client.APIURL = testServer(t, payload).URL

	got, err := client.Search(context.Background(), "программист", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("len = %d, want 2", got.Len())
	}

	first := got.Items[0]
	if first.ID != "tv_abc-123" {
		t.Errorf("id = %s, want tv_abc-123", first.ID)
	}
	if first.Source != "trudvsem" {
		t.Errorf("source = %s", first.Source)
	}
	if first.AlternateURL != "https://trudvsem.ru/vacancy/card/7701/abc-123" {
		t.Errorf("alternate_url = %s", first.AlternateURL)
	}
	if first.Salary == nil || *first.Salary.From != 90000 || *first.Salary.To != 140000 {
		t.Errorf("salary = %+v", first.Salary)
	}
	if first.Salary.Currency != "RUR" {
		t.Errorf("currency = %s", first.Salary.Currency)
	}

	if got.Items[1].Salary != nil {
		t.Errorf("zero salary must map to nil, got %+v", got.Items[1].Salary)
	}
}

func TestSearchMinSalaryFilter(t *testing.T) {
	t.Parallel()

	payload := `{"results":{"vacancies":[
		{"vacancy":{"id":"low","job-name":"Курьер","salary_min":40000,"salary_max":60000,
			"company":{"name":"Доставка","companycode":"1"},"region":{"name":"Казань"}}},
		{"vacancy":{"id":"open","job-name":"Аналитик","salary_min":0,"salary_max":0,
			"company":{"name":"Банк","companycode":"2"},"region":{"name":"Казань"}}},
		{"vacancy":{"id":"high","job-name":"Разработчик","salary_min":150000,"salary_max":200000,
			"company":{"name":"Студия","companycode":"3"},"region":{"name":"Казань"}}}
	]}}`

	client := New(zap.NewNop())
	client.APIURL = testServer(t, payload).URL

	got, err := client.Search(context.Background(), "работа", 100000)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("len = %d, want 2 (below-threshold entry dropped)", got.Len())
	}
	if got.Items[0].ID != "tv_open" || got.Items[1].ID != "tv_high" {
		t.Errorf("ids = %v", got.IDs())
	}
}

func TestSearchBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := New(zap.NewNop())
	client.APIURL = srv.URL

	if _, err := client.Search(context.Background(), "x", 0); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
