package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var (
	lineLimits     = []int{100, 250, 500, 1000, 0}
	refreshTimers  = []int{1000, 3000, 5000, 10000, 30000, 60000}
	defaultLineCap = 100
)

// Options controls the initial state of the viewer page.
type Options struct {
	BaseURL      string
	AutoRefresh  bool
	RefreshTimer int
	AutoScroll   bool
	Colorize     bool
	DefaultLines int
}

type choice struct {
	Value    int
	Label    string
	Selected bool
}

type pageData struct {
	BaseURL    string
	BodyClass  string
	AutoScroll bool
	Lines      []choice
	Refresh    []choice
}

// Page is the parsed viewer template bound to one set of options.
type Page struct {
	tmpl *template.Template
	data pageData
}

func New(opts Options) (*Page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse viewer template: %w", err)
	}

	return &Page{tmpl: tmpl, data: buildData(opts)}, nil
}

func (p *Page) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, p.data); err != nil {
		return fmt.Errorf("render viewer: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func buildData(opts Options) pageData {
	selectedLines := defaultLineCap
	for _, limit := range lineLimits {
		if opts.DefaultLines == limit {
			selectedLines = limit
		}
	}

	selectedRefresh := 0
	if opts.AutoRefresh {
		selectedRefresh = opts.RefreshTimer
	}

	data := pageData{
		BaseURL:    strings.TrimRight(opts.BaseURL, "/"),
		AutoScroll: opts.AutoScroll,
	}
	if opts.Colorize {
		data.BodyClass = "colorize"
	}

	for _, limit := range lineLimits {
		label := fmt.Sprintf("Last %d", limit)
		if limit == 0 {
			label = "All"
		}
		data.Lines = append(data.Lines, choice{Value: limit, Label: label, Selected: limit == selectedLines})
	}

	known := false
	for _, timer := range refreshTimers {
		if timer == selectedRefresh {
			known = true
		}
		data.Refresh = append(data.Refresh, choice{Value: timer, Label: "Refresh: " + refreshLabel(timer), Selected: timer == selectedRefresh})
	}
	if !known && selectedRefresh > 0 {
		data.Refresh = append(data.Refresh, choice{Value: selectedRefresh, Label: "Refresh: " + refreshLabel(selectedRefresh), Selected: true})
	}
	data.Refresh = append(data.Refresh, choice{Value: 0, Label: "Manual Refresh", Selected: selectedRefresh == 0})

	return data
}

func refreshLabel(ms int) string {
	if ms%60000 == 0 {
		return fmt.Sprintf("%dm", ms/60000)
	}
	if ms%1000 == 0 {
		return fmt.Sprintf("%ds", ms/1000)
	}
	return fmt.Sprintf("%dms", ms)
}
