// Package trudvsem is the adapter for the "Работа России" open-data API
// (opendata.trudvsem.ru).
package trudvsem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spigell/job-scout/internal/vacancy"

	"go.uber.org/zap"
)

const (
	apiURL = "http://opendata.trudvsem.ru/api/v1"

	searchLimit = 30
	maxResults  = 20

	vacancyCardURL = "https://trudvsem.ru/vacancy/card"
)

type Client struct {
	HTTPClient *http.Client
	APIURL     string
	logger     *zap.Logger
}

func New(logger *zap.Logger) *Client {
	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// response mirrors the results.vacancies[].vacancy envelope of the API.
type response struct {
	Results struct {
		Vacancies []struct {
			Vacancy item `json:"vacancy"`
		} `json:"vacancies"`
	} `json:"results"`
}

type item struct {
	ID        string  `json:"id"`
	JobName   string  `json:"job-name"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
	Company   struct {
		Name        string `json:"name"`
		CompanyCode string `json:"companycode"`
	} `json:"company"`
	Region struct {
		Name string `json:"name"`
	} `json:"region"`
}

// Search queries the API with the raw (non-expanded) user query. Entries
// whose declared maximum salary is below minSalary are dropped before
// mapping; the result is capped at twenty records.
func (c *Client) Search(ctx context.Context, query string, minSalary int) (*vacancy.Vacancies, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("offset", "0")
	q.Set("limit", fmt.Sprintf("%d", searchLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/vacancies", c.APIURL), nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	result := &vacancy.Vacancies{}
	for _, entry := range parsed.Results.Vacancies {
		vac := entry.Vacancy

		if minSalary > 0 && vac.SalaryMax > 0 && int(vac.SalaryMax) < minSalary {
			continue
		}

		result.Append(mapItem(vac))
		if result.Len() == maxResults {
			break
		}
	}

	c.logger.Debug("trudvsem search done",
		zap.String("query", query),
		zap.Int("returned", result.Len()),
	)

	return result, nil
}

func mapItem(vac item) *vacancy.Vacancy {
	var salary *vacancy.Salary
	if vac.SalaryMin > 0 || vac.SalaryMax > 0 {
		salary = &vacancy.Salary{Currency: "RUR"}
		if vac.SalaryMin > 0 {
			from := int(vac.SalaryMin)
			salary.From = &from
		}
		if vac.SalaryMax > 0 {
			to := int(vac.SalaryMax)
			salary.To = &to
		}
		salary = vacancy.NormalizeSalary(salary)
	}

	return &vacancy.Vacancy{
		ID:           "tv_" + vac.ID,
		Name:         vacancy.TruncateName(vac.JobName),
		Employer:     vacancy.Employer{Name: vac.Company.Name},
		Salary:       salary,
		AlternateURL: fmt.Sprintf("%s/%s/%s", vacancyCardURL, vac.Company.CompanyCode, vac.ID),
		Area:         vacancy.Area{Name: vac.Region.Name},
		Source:       vacancy.SourceTrudvsem,
	}
}
