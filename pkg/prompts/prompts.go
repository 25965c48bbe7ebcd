package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Digest DigestPrompts `yaml:"digest"`
	Page   PagePrompts   `yaml:"page"`
}

type SystemPrompts struct {
	Digest string `yaml:"digest"`
	Page   string `yaml:"page"`
}

type DigestPrompts struct {
	Generate string `yaml:"generate"`
}

type PagePrompts struct {
	Fill string `yaml:"fill"`
}

type DigestParams struct {
	News string
	Date string
}

type PageFillParams struct {
	News     string
	Template string
	Number   string
}

// Default returns the built-in prompts, used when no prompts.yaml
// override is present.
func Default() *Prompts {
	return &Prompts{
		System: SystemPrompts{
			Digest: "你是《单机游戏日报》的编辑。你将原始游戏新闻整理成适合口播的日报稿件，语言口语化、简洁、适合朗读。",
			Page:   "You are a meticulous front-end assistant. You fill HTML templates with news content without altering their CSS or structure.",
		},
		Digest: DigestPrompts{
			Generate: `请将下面的新闻素材整理成 {{.Date}} 的《单机游戏日报》播报稿。

要求：
1. 输出 Markdown，每条新闻一个二级标题（## 新闻标题），标题不超过 15 个字。
2. 第一条新闻的正文以"欢迎收看今天的单机游戏日报。"开头。
3. 每条正文 80 到 150 字，口语化，适合直接朗读，不要使用列表或链接。
4. 最后补充一个标题为"结束"的章节，内容是一句简短的结束语。

新闻素材：
{{.News}}`,
		},
		Page: PagePrompts{
			Fill: `Task: Fill the provided HTML template with the news content.

News Content:
{{.News}}

HTML Template:
{{.Template}}

Requirements:
1. Return the FULL HTML code.
2. Do NOT change the CSS or structure of the template.
3. Replace the NUMBER placeholder with "{{.Number}}".
4. Replace the TITLE placeholder with the news headline.
5. Replace the SUMMARY placeholder with a 1-sentence summary (around 30-40 Chinese characters).
6. Replace the CONTENT placeholder with the full news body (wrap paragraphs in <p> tags).
7. Ensure all text is in Chinese.
8. IMPORTANT: The content must fit within a single 1920x1080 page. Summarize the body text to approximately 100-200 Chinese characters to prevent overflow.`,
		},
	}
}

func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err != nil {
		return Default(), nil
	}
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return &p, nil
}

func (p *Prompts) RenderDigest(params DigestParams) (string, error) {
	return render(p.Digest.Generate, params)
}

func (p *Prompts) RenderPageFill(params PageFillParams) (string, error) {
	return render(p.Page.Fill, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
