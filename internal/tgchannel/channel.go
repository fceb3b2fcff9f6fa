// Package tgchannel scrapes public Telegram channels through their HTML
// mirror at https://t.me/s/{slug} and parses free-form postings into
// canonical vacancies.
package tgchannel

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spigell/job-scout/internal/utils"
	"github.com/spigell/job-scout/internal/vacancy"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	baseURL   = "https://t.me/s"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	messageWrapClass = "tgme_widget_message_wrap"
	messageTextClass = "tgme_widget_message_text"
	messageDateClass = "tgme_widget_message_date"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	logger     *zap.Logger
}

func New(logger *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		UserAgent: userAgent,
		logger:    logger,
	}
}

// FetchChannel downloads the channel feed and returns every message that
// classifies as a job posting, mapped into the canonical schema.
func (c *Client) FetchChannel(ctx context.Context, channel string) ([]*vacancy.Vacancy, error) {
	url := fmt.Sprintf("%s/%s", c.BaseURL, channel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing channel html: %w", err)
	}

	vacancies := c.parseMessages(doc, channel, url)

	c.logger.Debug("parsed channel feed",
		zap.String("channel", channel),
		zap.Int("postings", len(vacancies)),
	)

	return vacancies, nil
}

func (c *Client) parseMessages(doc *html.Node, channel, feedURL string) []*vacancy.Vacancy {
	var vacancies []*vacancy.Vacancy

	for _, wrap := range findAllByClass(doc, messageWrapClass) {
		textNode := findByClass(wrap, messageTextClass)
		if textNode == nil {
			continue
		}

		text := collectText(textNode)
		if !IsJobPosting(text) {
			c.logger.Debug("skipping non-job message",
				zap.String("channel", channel),
				zap.String("text", utils.TruncateEllipsis(text, 80)),
			)
			continue
		}

		msgURL := feedURL
		if date := findByClass(wrap, messageDateClass); date != nil {
			if href := attr(date, "href"); href != "" {
				msgURL = href
			}
		}

		parts := strings.Split(msgURL, "/")
		msgID := parts[len(parts)-1]
		if msgID == "" {
			msgID = "0"
		}

		vacancies = append(vacancies, &vacancy.Vacancy{
			ID:           fmt.Sprintf("tg_%s_%s", channel, msgID),
			Name:         ExtractTitle(text),
			Employer:     vacancy.Employer{Name: ExtractCompany(text)},
			Salary:       ExtractSalary(text),
			AlternateURL: msgURL,
			Area:         vacancy.Area{Name: Region(text)},
			Source:       vacancy.SourceTelegram,
			Channel:      "@" + channel,
			TextHash:     vacancy.CutRunes(text, vacancy.TextHashLen),
			FullText:     vacancy.CutRunes(text, vacancy.MaxFullTextLen),
			ParsedAt:     time.Now().Format(time.RFC3339),
		})
	}

	return vacancies
}

// collectText gathers descendant text nodes, one line per node, matching
// the line structure the mirror renders with <br> and nested blocks.
func collectText(n *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if trimmed := strings.TrimSpace(node.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return strings.Join(parts, "\n")
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, class) {
			found = append(found, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return found
}

func findByClass(n *html.Node, class string) *html.Node {
	all := findAllByClass(n, class)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}
