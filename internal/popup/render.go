package popup

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/arcks/internal/summary"
)

const faviconService = "https://www.google.com/s2/favicons"

var templates = template.Must(template.New("popup").Parse(`
{{- define "source" -}}
<a class="arcks-link" href="{{.URL}}" target="_blank" rel="noopener">
<img class="arcks-favicon" src="{{.Favicon}}" alt="">
<span class="arcks-url">{{.Host}}</span>
</a>
{{- end -}}

{{- define "loading" -}}
<div class="arcks-popup">
<div class="arcks-skeleton">
<div class="arcks-skeleton-title"></div>
<div class="arcks-skeleton-line"></div>
<div class="arcks-skeleton-line"></div>
<div class="arcks-skeleton-line"></div>
</div>
{{template "source" .}}
</div>
{{- end -}}

{{- define "content" -}}
<div class="arcks-popup">
<h3 class="arcks-title">{{.Title}}</h3>
<p class="arcks-summary">{{.Summary}}</p>
{{template "source" .}}
</div>
{{- end -}}

{{- define "error" -}}
<div class="arcks-popup">
<div class="arcks-skeleton">
<div class="arcks-error">{{.Message}}</div>
</div>
{{template "source" .}}
</div>
{{- end -}}
`))

// fragmentPolicy admits exactly the markup the templates produce.
var fragmentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "h3", "p", "span", "a", "img")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
	p.AllowAttrs("rel").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}()

type viewData struct {
	URL     string
	Host    string
	Favicon string
	Title   string
	Summary string
	Message string
}

func newViewData(target string) viewData {
	host := ""
	if u, err := url.Parse(target); err == nil {
		host = u.Hostname()
	}
	return viewData{
		URL:     target,
		Host:    host,
		Favicon: faviconService + "?domain=" + url.QueryEscape(host) + "&sz=32",
	}
}

// RenderLoading renders the loading skeleton for target.
func RenderLoading(target string) string {
	return render("loading", newViewData(target))
}

// RenderContent renders a summary. The title falls back to the host and the
// body to a placeholder.
func RenderContent(target string, res summary.Result) string {
	data := newViewData(target)
	data.Title = res.Title
	if data.Title == "" {
		data.Title = data.Host
	}
	data.Summary = res.Text()
	return render("content", data)
}

// RenderError renders msg in place of the skeleton, keeping the source link.
func RenderError(target, msg string) string {
	data := newViewData(target)
	data.Message = msg
	return render("error", data)
}

func render(name string, data viewData) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Sprintf(`<div class="arcks-popup"><div class="arcks-error">%s</div></div>`,
			template.HTMLEscapeString(summary.PreviewFailed))
	}
	return fragmentPolicy.Sanitize(buf.String())
}
