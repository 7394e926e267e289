// Package report turns per-symbol results into the HTML email body.
// Rendering is deterministic: identical inputs produce byte-identical
// output. All upstream text (symbols, headlines, model narrative) is
// escaped on the way in.
package report

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"stockpulse/internal/types"
)

var sectionTmpl = template.Must(template.New("section").Parse(`<div style="border:1px solid #eee; padding:15px; margin-bottom:20px; border-radius:8px;">
  <h3>{{.Symbol}}</h3>
  <p><b>Price:</b> ${{.Price}} | <b>Volume:</b> {{.Volume}}</p>
  <p><b>Top News:</b><br>{{if .Headlines}}{{range $i, $h := .Headlines}}{{if $i}}<br>{{end}}{{$h}}{{end}}{{else}}No news found.{{end}}</p>
  <p><b>AI Insight:</b> {{.Summary}}</p>
</div>`))

var emailTmpl = template.Must(template.New("email").Parse(`<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>StockPulse Agent Report</h2>
    {{.Body}}
    <p style="font-size:12px; color:#888;">You received this because you subscribed to StockPulse.<br/>
    <a href="{{.Unsubscribe}}" style="color:#d00;">Unsubscribe here.</a></p>
  </body>
</html>`))

// BuildSection combines one symbol's pipeline outputs into a report
// fragment. Pure and total; it carries no failure state.
func BuildSection(symbol string, quote types.Quote, headlines []string, summary types.Summary) types.ReportSection {
	return types.ReportSection{
		Symbol:    symbol,
		Quote:     quote,
		Headlines: headlines,
		Summary:   summary,
	}
}

// RenderSection renders one section to its HTML fragment. Missing
// headlines render the "No news found." placeholder.
func RenderSection(sec types.ReportSection) string {
	data := struct {
		Symbol    string
		Price     string
		Volume    int64
		Headlines []string
		Summary   string
	}{
		Symbol:    sec.Symbol,
		Price:     strconv.FormatFloat(sec.Quote.Price, 'f', -1, 64),
		Volume:    sec.Quote.Volume,
		Headlines: sec.Headlines,
		Summary:   sec.Summary.Text,
	}

	var b strings.Builder
	// Execute on a vetted template with plain fields cannot fail.
	_ = sectionTmpl.Execute(&b, data)
	return b.String()
}

// Render assembles the full email body for one recipient from their
// sections, in order, wrapped in the fixed template with the
// unsubscribe link.
func Render(recipient string, sections []types.ReportSection, unsubscribeBase string) string {
	fragments := make([]string, 0, len(sections))
	for _, sec := range sections {
		fragments = append(fragments, RenderSection(sec))
	}

	data := struct {
		Body        template.HTML
		Unsubscribe string
	}{
		// Section fragments are already escaped by RenderSection.
		Body:        template.HTML(strings.Join(fragments, "\n")),
		Unsubscribe: unsubscribeBase + "/unsubscribe?email=" + url.QueryEscape(recipient),
	}

	var b strings.Builder
	_ = emailTmpl.Execute(&b, data)
	return b.String()
}
