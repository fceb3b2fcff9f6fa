package headhunter

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/spigell/job-scout/internal/prefs"
	"github.com/spigell/job-scout/internal/vacancy"

	"github.com/mitchellh/mapstructure"
)

type SearchParams struct {
	// hhparam is a custom tag for reflect. Please see buildParams.
	Text        string `hhparam:"text"`
	SearchField string `hhparam:"search_field"`
	PerPage     string `hhparam:"per_page"`
	Page        string `hhparam:"page"`
	Schedule    string `hhparam:"schedule"`
	Experience  string `hhparam:"experience"`
	Area        int    `hhparam:"area"`
	Period      int    `hhparam:"period"`
	Salary      int    `hhparam:"salary"`
}

// NewSearchParams builds the fixed online-path query: title-only search
// over the last two weeks, one page of twenty, narrowed by preferences.
func NewSearchParams(query string, p *prefs.Preferences) *SearchParams {
	params := &SearchParams{
		Text:        query,
		SearchField: "name",
		PerPage:     "20",
		Page:        "0",
		Area:        p.Area,
		Period:      14,
	}

	if params.Area == 0 {
		params.Area = prefs.DefaultArea
	}

	params.Schedule = p.Schedule
	params.Salary = p.Salary
	params.Experience = p.Experience

	return params
}

type searchResponse struct {
	Items []map[string]any `json:"items"`
	Found int              `json:"found"`
}

// Search performs a single-page vacancy search and maps the items into
// the canonical schema tagged source=hh.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*vacancy.Vacancies, error) {
	var response searchResponse
	searchURL := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	if err := c.getJSON(ctx, searchURL, buildParams(params), &response); err != nil {
		return nil, err
	}

	var items []*vacancy.Vacancy
	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(response.Items); err != nil {
		return nil, fmt.Errorf("decoding vacancy items: %w", err)
	}

	for _, item := range items {
		item.ID = "hh_" + item.ID
		item.Source = vacancy.SourceHH
		item.Name = vacancy.TruncateName(item.Name)
		item.Salary = vacancy.NormalizeSalary(item.Salary)
	}

	return &vacancy.Vacancies{Items: items}, nil
}

// buildParams converts SearchParams into url.Values using the hhparam
// tags: empty strings and zero numbers are treated as unset.
func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))

	for _, field := range fields {
		key := field.Tag.Get("hhparam")
		if key == "" {
			continue
		}

		value := reflect.ValueOf(params).Elem().FieldByIndex(field.Index)
		switch field.Type.Kind() {
		case reflect.String:
			if s := value.String(); s != "" {
				q.Set(key, s)
			}
		case reflect.Int:
			if n := value.Int(); n != 0 {
				q.Set(key, strconv.FormatInt(n, 10))
			}
		}
	}

	return q
}
