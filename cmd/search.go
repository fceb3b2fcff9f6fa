package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/job-scout/internal/ai"
	"github.com/spigell/job-scout/internal/ai/gemini"
	"github.com/spigell/job-scout/internal/ai/openrouter"
	"github.com/spigell/job-scout/internal/gate"
	"github.com/spigell/job-scout/internal/headhunter"
	"github.com/spigell/job-scout/internal/logger"
	"github.com/spigell/job-scout/internal/prefs"
	"github.com/spigell/job-scout/internal/resume"
	"github.com/spigell/job-scout/internal/search"
	"github.com/spigell/job-scout/internal/secrets"
	"github.com/spigell/job-scout/internal/session"
	"github.com/spigell/job-scout/internal/stats"
	"github.com/spigell/job-scout/internal/store"
	"github.com/spigell/job-scout/internal/trudvsem"
	"github.com/spigell/job-scout/internal/vacancy"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptCover     = "Сопроводительное письмо"
	PromptAdapt     = "Адаптировать резюме"
	PromptBack      = "Назад к списку"
	PromptNextPage  = "Следующая страница"
	PromptPrevPage  = "Предыдущая страница"
	PromptNewSearch = "Новый поиск"
	PromptExit      = "Выход"
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search vacancies interactively and generate application artifacts",
	Run: func(_ *cobra.Command, _ []string) {
		runSearch()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("resume", "r", "", "path to a resume file (pdf, docx or txt) for AI generation")
	searchCmd.Flags().Int64P("user-id", "u", 1, "user id for quota accounting")

	viper.BindPFlag("resume", searchCmd.Flags().Lookup("resume"))
	viper.BindPFlag("user-id", searchCmd.Flags().Lookup("user-id"))
}

func runSearch() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	vacancyStore := store.New(config.StoreFile, logger)
	vacancyStore.Load()

	ledger := stats.New(config.StatsFile, logger)
	ledger.Load()

	userID := viper.GetInt64("user-id")
	if err := ledger.TrackUser(userID); err != nil {
		logger.Warn("tracking user", zap.Error(err))
	}

	hh := headhunter.New(logger)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	sessions := session.NewStore()
	sess := sessions.Start(userID)

	if path := viper.GetString("resume"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("reading resume file", zap.Error(err))
		}
		text, err := resume.ExtractText(path, data)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}
		sess.Resume = text
		logger.Info("resume loaded", zap.Int("chars", len(text)))
	}

	var artifactGate *gate.Gate
	generator, err := newGenerator(ctx, config.AI)
	if err != nil {
		logger.Warn("AI generation unavailable", zap.Error(err))
	} else {
		artifactGate = gate.New(ledger, generator, logger)
	}

	aggregator := search.NewAggregator(hh, trudvsem.New(logger), vacancyStore, logger)

	for {
		if err := searchOnce(ctx, aggregator, hh, artifactGate, ledger, sess, config, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func searchOnce(ctx context.Context, aggregator *search.Aggregator, hh *headhunter.Client, artifactGate *gate.Gate, ledger *stats.Ledger, sess *session.Session, config *Config, logger *zap.Logger) error {
	if sess.Prefs == nil {
		prompt := promptui.Prompt{
			Label: "Предпочтения (например: удалёнка, от 150, без опыта) или 'пропустить'",
		}
		answer, err := prompt.Run()
		if err != nil {
			return errExit
		}

		sess.Prefs = prefs.Parse(answer)
		if sess.Prefs.Area == prefs.DefaultArea && config.Area != 0 {
			sess.Prefs.Area = config.Area
		}
		fmt.Printf("Фильтры: %s\n", sess.Prefs.Summary())
	}

	prompt := promptui.Prompt{Label: "Должность или ключевые слова"}
	query, err := prompt.Run()
	if err != nil {
		return errExit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if err := ledger.TrackSearch(); err != nil {
		logger.Warn("tracking search", zap.Error(err))
	}

	result := aggregator.Search(ctx, query, sess.Prefs)
	if result.Items.Len() == 0 {
		fmt.Println("Вакансии не найдены. Попробуй изменить запрос.")
		return nil
	}

	fmt.Printf("Найдено %d вакансий (%s)\n", result.Items.Len(), result.SourceSummary())

	sess.Result = result
	sess.Page = 0

	return browse(ctx, hh, artifactGate, sess, logger)
}

func browse(ctx context.Context, hh *headhunter.Client, artifactGate *gate.Gate, sess *session.Session, logger *zap.Logger) error {
	for {
		page := sess.Result.Page(sess.Page)

		items := make([]string, 0, len(page)+4)
		for _, v := range page {
			items = append(items, listLine(v))
		}
		if sess.Page > 0 {
			items = append(items, PromptPrevPage)
		}
		if sess.Page+1 < sess.Result.TotalPages() {
			items = append(items, PromptNextPage)
		}
		items = append(items, PromptNewSearch, PromptExit)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Страница %d из %d", sess.Page+1, sess.Result.TotalPages()),
			Items: items,
			Size:  search.PageSize + 4,
		}

		idx, choice, err := prompt.Run()
		if err != nil {
			return errExit
		}

		switch choice {
		case PromptPrevPage:
			sess.Page--
			continue
		case PromptNextPage:
			sess.Page++
			continue
		case PromptNewSearch:
			return nil
		case PromptExit:
			return errExit
		}

		sess.Current = page[idx]
		if err := showVacancy(ctx, hh, artifactGate, sess, logger); err != nil {
			return err
		}
	}
}

func showVacancy(ctx context.Context, hh *headhunter.Client, artifactGate *gate.Gate, sess *session.Session, logger *zap.Logger) error {
	v := sess.Current

	// hh records come from the list endpoint without a description, the
	// detail endpoint fills it in.
	if v.Source == vacancy.SourceHH && v.Description == "" {
		detailed, err := hh.GetVacancy(ctx, v.ID)
		if err != nil {
			logger.Warn("fetching vacancy details", zap.Error(err))
		} else {
			*v = *detailed
		}
	}

	fmt.Printf("\n%s\n%s\n", v.Name, v.Employer.Name)
	if v.Salary != nil {
		fmt.Printf("Зарплата: %s\n", salaryLine(v.Salary))
	}
	if v.Area.Name != "" {
		fmt.Printf("Регион: %s\n", v.Area.Name)
	}
	fmt.Printf("Ссылка: %s\n", v.AlternateURL)

	switch {
	case v.Description != "":
		fmt.Printf("\n%s\n\n", headhunter.DisplayDescription(v))
	case v.FullText != "":
		fmt.Printf("\n%s\n\n", v.FullText)
	}

	prompt := promptui.Select{
		Label: "Что дальше?",
		Items: []string{PromptCover, PromptAdapt, PromptBack},
	}
	_, choice, err := prompt.Run()
	if err != nil {
		return errExit
	}

	switch choice {
	case PromptCover:
		return generateArtifact(ctx, artifactGate, sess, gate.ActionCover, logger)
	case PromptAdapt:
		return generateArtifact(ctx, artifactGate, sess, gate.ActionAdapt, logger)
	}

	return nil
}

func generateArtifact(ctx context.Context, artifactGate *gate.Gate, sess *session.Session, action string, logger *zap.Logger) error {
	if artifactGate == nil {
		fmt.Println("AI генерация не настроена: нужен API ключ (OPENROUTER_API_KEY).")
		return nil
	}
	if sess.Resume == "" {
		fmt.Println("Резюме не загружено: запусти с флагом --resume.")
		return nil
	}

	userID := viper.GetInt64("user-id")
	invoice, err := artifactGate.Decide(userID, action)
	if err != nil {
		return err
	}
	if invoice != nil {
		fmt.Printf("Бесплатный лимит исчерпан. Счёт: %s — %d %s (payload %s)\n",
			invoice.Title, invoice.Amount, invoice.Currency, invoice.Payload)
		return nil
	}

	fmt.Println("Генерирую (10-20 сек)...")

	var artifact string
	switch action {
	case gate.ActionCover:
		artifact, err = artifactGate.ExecuteCover(ctx, sess.Current, sess.Resume)
	case gate.ActionAdapt:
		artifact, err = artifactGate.ExecuteAdapt(ctx, sess.Current, sess.Resume)
	}
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		fmt.Printf("Ошибка генерации: %s\n", err)
		return nil
	}

	fmt.Printf("\n%s\n\n", artifact)

	return nil
}

func newGenerator(ctx context.Context, cfg *AIConfig) (ai.Generator, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "openrouter":
		or := cfg.OpenRouter
		if or == nil {
			or = &OpenRouterConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openrouter api key",
			Value: or.APIKey,
			File:  or.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set OPENROUTER_API_KEY or ai.openrouter.api-key-file)", err)
		}
		return openrouter.New(apiKey, or.Model)
	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("gemini configuration is required for the gemini provider")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set GEMINI_API_KEY or ai.gemini.api-key-file)", err)
		}
		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	}

	return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
}

func listLine(v *vacancy.Vacancy) string {
	line := fmt.Sprintf("[%s] %s", v.Source, v.Name)
	if v.Employer.Name != "" {
		line += " – " + v.Employer.Name
	}
	if v.Salary != nil {
		line += " (" + salaryLine(v.Salary) + ")"
	}

	return line
}

func salaryLine(s *vacancy.Salary) string {
	switch {
	case s.From != nil && s.To != nil:
		return fmt.Sprintf("%d-%d %s", *s.From, *s.To, s.Currency)
	case s.From != nil:
		return fmt.Sprintf("от %d %s", *s.From, s.Currency)
	case s.To != nil:
		return fmt.Sprintf("до %d %s", *s.To, s.Currency)
	}

	return s.Currency
}
