package render

import "os"

// Page templates use literal placeholders ({{DATE}}, {{TITLE}}, ...)
// rather than html/template syntax because the detail template is
// passed through a language model verbatim and filled there.
const defaultDetailTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>单机游戏日报</title>
<style>
  body { margin: 0; width: 1920px; height: 1080px; background: #1e222e; color: #e8e8e8; font-family: "PingFang SC", "Microsoft YaHei", sans-serif; overflow: hidden; }
  .page { box-sizing: border-box; width: 100%; height: 100%; padding: 80px 120px; display: flex; flex-direction: column; }
  .header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 3px solid #e0a458; padding-bottom: 24px; }
  .brand { font-size: 40px; font-weight: 700; color: #e0a458; }
  .date { font-size: 28px; color: #9aa0b0; }
  .number { font-size: 96px; font-weight: 700; color: #2e3442; margin-top: 30px; }
  h1 { font-size: 56px; margin: 10px 0 30px; }
  .summary { font-size: 30px; color: #c8cdd8; margin-bottom: 40px; }
  .content { font-size: 32px; line-height: 1.8; }
</style>
</head>
<body>
<div class="page">
  <div class="header"><div class="brand">单机游戏日报</div><div class="date">{{DATE}}</div></div>
  <div class="number">{{NUMBER}}</div>
  <h1>{{TITLE}}</h1>
  <div class="summary">{{SUMMARY}}</div>
  <div class="content">{{CONTENT}}</div>
</div>
</body>
</html>`

const defaultIndexTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>单机游戏日报</title>
<style>
  body { margin: 0; width: 1920px; height: 1080px; background: #1e222e; color: #e8e8e8; font-family: "PingFang SC", "Microsoft YaHei", sans-serif; overflow: hidden; }
  .page { box-sizing: border-box; width: 100%; height: 100%; padding: 70px 120px; display: flex; flex-direction: column; }
  .header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 3px solid #e0a458; padding-bottom: 24px; margin-bottom: 30px; }
  .brand { font-size: 44px; font-weight: 700; color: #e0a458; }
  .date { font-size: 28px; color: #9aa0b0; }
  .news-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 30px 60px; }
  .news-item { display: flex; gap: 24px; padding: 25px; background: #262b3a; border-radius: 12px; }
  .news-number { font-size: 40px; font-weight: 700; color: #e0a458; }
  .news-title { font-size: 32px; font-weight: 600; margin-bottom: 8px; }
  .news-summary { font-size: 24px; color: #9aa0b0; }
</style>
</head>
<body>
<div class="page">
  <div class="header"><div class="brand">单机游戏日报</div><div class="date">{{DATE}}</div></div>
  <div class="news-grid">{{NEWS_ITEMS}}</div>
</div>
</body>
</html>`

// LoadTemplate reads a template override from path, falling back when
// the file does not exist.
func LoadTemplate(path, fallback string) string {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	return string(data)
}
