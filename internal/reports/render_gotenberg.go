package reports

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/odyssey-erp/stockledger/internal/shared"
	"github.com/odyssey-erp/stockledger/web"
)

// HTMLConverter converts an HTML document into PDF bytes.
type HTMLConverter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// GotenbergRenderer renders the report template and hands it to Gotenberg.
type GotenbergRenderer struct {
	Title     string
	converter HTMLConverter
	tpl       *template.Template
}

type salesReportView struct {
	Title  string
	Report Report
}

// NewGotenbergRenderer parses the embedded report template.
func NewGotenbergRenderer(title string, converter HTMLConverter) (*GotenbergRenderer, error) {
	funcMap := template.FuncMap{
		"currency": shared.FormatCurrency,
		"date": func(t time.Time) string {
			return t.Format(dateLayout)
		},
		"datetime": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04 UTC")
		},
		"inc": func(i int) int { return i + 1 },
	}
	tpl, err := template.New("sales_report_pdf.html").Funcs(funcMap).ParseFS(
		web.Templates, "templates/reports/sales_report_pdf.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse sales report template: %w", err)
	}
	if title == "" {
		title = "Sales Report"
	}
	return &GotenbergRenderer{Title: title, converter: converter, tpl: tpl}, nil
}

// Render implements Renderer.
func (r *GotenbergRenderer) Render(ctx context.Context, rep Report) ([]byte, error) {
	html, err := r.html(rep)
	if err != nil {
		return nil, err
	}
	return r.converter.RenderHTML(ctx, html)
}

func (r *GotenbergRenderer) html(rep Report) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, salesReportView{Title: r.Title, Report: rep}); err != nil {
		return "", fmt.Errorf("render sales report template: %w", err)
	}
	return buf.String(), nil
}
