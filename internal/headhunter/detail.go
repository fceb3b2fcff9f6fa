package headhunter

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/job-scout/internal/utils"
	"github.com/spigell/job-scout/internal/vacancy"
)

const (
	// DisplayDescriptionLimit caps the cleaned description shown to a user.
	DisplayDescriptionLimit = 800
	// PromptDescriptionLimit caps the description embedded into LLM prompts.
	PromptDescriptionLimit = 2000
)

// GetVacancy fetches the full record for a canonical hh_ id. The
// description comes back as HTML and is cleaned for direct display.
func (c *Client) GetVacancy(ctx context.Context, id string) (*vacancy.Vacancy, error) {
	rawID := strings.TrimPrefix(id, "hh_")
	if rawID == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var details vacancy.Vacancy
	detailURL := fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, rawID)
	if err := c.getJSON(ctx, detailURL, nil, &details); err != nil {
		return nil, err
	}

	details.ID = id
	details.Source = vacancy.SourceHH
	details.Name = vacancy.TruncateName(details.Name)
	details.Salary = vacancy.NormalizeSalary(details.Salary)
	details.Description = utils.Truncate(utils.CleanHTML(details.Description), PromptDescriptionLimit)

	return &details, nil
}

// DisplayDescription returns the short description variant for chat output.
func DisplayDescription(v *vacancy.Vacancy) string {
	return utils.Truncate(v.Description, DisplayDescriptionLimit)
}
