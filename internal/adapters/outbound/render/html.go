package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/codewarden/codewarden/internal/domain"
)

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>codewarden report: {{.Verdict}} risk</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #1f2328; margin: 0; }
main { max-width: 880px; margin: 0 auto; padding: 2rem 1.5rem 4rem; }
h1 { border-bottom: 2px solid #d97706; padding-bottom: .4rem; }
h3 { margin-top: 2rem; }
h4 { margin-bottom: .4rem; }
table { border-collapse: collapse; margin: .8rem 0; }
th, td { border: 1px solid #d0d7de; padding: .3rem .8rem; text-align: left; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: .1rem .3rem; border-radius: 4px; }
pre { background: #f6f8fa; padding: .8rem; border-radius: 6px; overflow-x: auto; }
pre code { background: none; padding: 0; }
ul { margin: .4rem 0; }
</style>
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// HTML renders the markdown report into a standalone page. The GFM
// extension is required for the summary tables.
func HTML(report *domain.Report) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(report)), &body); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Verdict string
		Body    template.HTML
	}{
		Verdict: report.Summary.RiskVerdict,
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out.String(), nil
}
