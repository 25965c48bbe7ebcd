// Package render produces the news page images: HTML pages are built
// per section plus a table-of-contents page, then captured in a
// headless browser at the video resolution.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"newsreel/internal/llm"
	"newsreel/internal/markdown"
	"newsreel/pkg/prompts"
)

var weekdayNames = []string{"日", "一", "二", "三", "四", "五", "六"}

// PageBuilder fills HTML templates for each news section. With a
// language model it rewrites the body to fit one 1920x1080 page; with
// no model it falls back to a plain markdown conversion.
type PageBuilder struct {
	model          llm.Client
	prompts        *prompts.Prompts
	detailTemplate string
	indexTemplate  string
	now            func() time.Time
}

type PageBuilderOptions struct {
	Model          llm.Client
	Prompts        *prompts.Prompts
	DetailTemplate string
	IndexTemplate  string
}

func NewPageBuilder(opts PageBuilderOptions) *PageBuilder {
	detail := opts.DetailTemplate
	if detail == "" {
		detail = defaultDetailTemplate
	}
	index := opts.IndexTemplate
	if index == "" {
		index = defaultIndexTemplate
	}
	p := opts.Prompts
	if p == nil {
		p = prompts.Default()
	}
	return &PageBuilder{
		model:          opts.Model,
		prompts:        p,
		detailTemplate: detail,
		indexTemplate:  index,
		now:            time.Now,
	}
}

// BuildNewsPage renders one section as a full HTML page and returns
// the page plus a short summary used on the index page. number is the
// 1-based story position, matching the news_<n>.png slide names.
func (b *PageBuilder) BuildNewsPage(ctx context.Context, number int, section markdown.Section) (string, string, error) {
	tmpl := strings.ReplaceAll(b.detailTemplate, "{{DATE}}", b.issueDate())

	if b.model == nil {
		return b.fillDetailLocally(tmpl, number, section)
	}

	userPrompt, err := b.prompts.RenderPageFill(prompts.PageFillParams{
		News:     "## " + section.Title + "\n" + section.Content,
		Template: tmpl,
		Number:   fmt.Sprintf("%02d", number),
	})
	if err != nil {
		return "", "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := b.model.Complete(ctx, b.prompts.System.Page, userPrompt)
	if err != nil {
		return "", "", fmt.Errorf("page generation for story %d: %w", number, err)
	}

	html := stripCodeFence(resp)
	if !strings.HasPrefix(html, "<!DOCTYPE") && !strings.HasPrefix(html, "<html") {
		return "", "", fmt.Errorf("model returned non-HTML for story %d", number)
	}
	return html, extractSummary(html, section), nil
}

// BuildIndexPage renders the table-of-contents page. Card sizing
// tightens as the item count grows so up to ten stories still fit one
// frame.
func (b *PageBuilder) BuildIndexPage(titles, summaries []string) string {
	count := len(titles)
	titleSize, summarySize, padding, gap, summaryLen := indexLayout(count)

	var items strings.Builder
	for i, title := range titles {
		summary := ""
		if i < len(summaries) {
			summary = summaries[i]
		}
		if runes := []rune(summary); len(runes) > summaryLen {
			summary = string(runes[:summaryLen-3]) + "..."
		}
		clean := strings.TrimSpace(strings.ReplaceAll(title, "#", ""))
		if clean == "" {
			clean = fmt.Sprintf("新闻 %d", i+1)
		}
		items.WriteString(fmt.Sprintf(`
<div class="news-item">
  <div class="news-number">%02d</div>
  <div class="news-content">
    <div class="news-title">%s</div>
    <div class="news-summary">%s</div>
  </div>
</div>
`, i+1, clean, summary))
	}

	page := strings.ReplaceAll(b.indexTemplate, "{{DATE}}", b.issueDate())
	page = strings.ReplaceAll(page, "{{NEWS_ITEMS}}", items.String())

	dynamicCSS := fmt.Sprintf(`<style>
.news-title { font-size: %dpx !important; }
.news-summary { font-size: %dpx !important; }
.news-item { padding: %dpx !important; }
.news-grid { gap: %s !important; }
</style>`, titleSize, summarySize, padding, gap)
	return strings.Replace(page, "</head>", dynamicCSS+"</head>", 1)
}

func indexLayout(count int) (titleSize, summarySize, padding int, gap string, summaryLen int) {
	switch {
	case count <= 4:
		return 32, 24, 25, "30px 60px", 50
	case count <= 6:
		return 28, 22, 22, "25px 50px", 45
	case count <= 8:
		return 26, 20, 20, "20px 40px", 38
	case count <= 10:
		return 24, 18, 18, "15px 35px", 32
	default:
		return 22, 16, 16, "12px 30px", 28
	}
}

// fillDetailLocally substitutes the placeholders without a model. Body
// markdown converts straight to HTML.
func (b *PageBuilder) fillDetailLocally(tmpl string, number int, section markdown.Section) (string, string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(section.Content), &body); err != nil {
		return "", "", fmt.Errorf("convert story %d: %w", number, err)
	}

	summary := firstSentence(section.Content)
	html := strings.ReplaceAll(tmpl, "{{NUMBER}}", fmt.Sprintf("%02d", number))
	html = strings.ReplaceAll(html, "{{TITLE}}", section.Title)
	html = strings.ReplaceAll(html, "{{SUMMARY}}", summary)
	html = strings.ReplaceAll(html, "{{CONTENT}}", body.String())
	return html, summary, nil
}

// issueDate is tomorrow's date: each batch is produced the evening
// before it airs.
func (b *PageBuilder) issueDate() string {
	t := b.now().AddDate(0, 0, 1)
	return fmt.Sprintf("%d年%02d月%02d日 星期%s",
		t.Year(), int(t.Month()), t.Day(), weekdayNames[int(t.Weekday())])
}

var (
	summaryDivRe = regexp.MustCompile(`(?s)<div class="summary">(.*?)</div>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
)

func extractSummary(html string, section markdown.Section) string {
	if m := summaryDivRe.FindStringSubmatch(html); m != nil {
		if s := strings.TrimSpace(htmlTagRe.ReplaceAllString(m[1], "")); s != "" {
			return s
		}
	}
	return firstSentence(section.Content)
}

func firstSentence(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if runes := []rune(line); len(runes) > 40 {
			return string(runes[:40]) + "..."
		}
		return line
	}
	return ""
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```html") {
		s = s[len("```html"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
