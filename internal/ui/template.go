package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

//go:embed templates/**
var commonFs embed.FS

const DateLayout = "02/01/2006 15:04"

var commonFuncs = template.FuncMap{
	"humanizeInt": func(n int64) string {
		return humanize.Comma(n)
	},
	"humanizeTime": humanize.Time,
	"subtract": func(a, b int) int {
		return a - b
	},
	"euros": Euros,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}

		return t.Format(DateLayout)
	},
}

// Euros formats an amount of cents, ie "1,250.00 €".
func Euros(cents int64) string {
	return humanize.FormatFloat("#,###.##", float64(cents)/100) + " €"
}

var ErrDuplicateTemplate = errors.New("duplicate template")

// Templates parses the views and layouts of the given filesystems merged with
// the shared ones. Template files must have a unique path across filesystems.
func Templates(funcs template.FuncMap, filesystems ...fs.FS) (*template.Template, error) {
	filesystems = append([]fs.FS{commonFs}, filesystems...)

	templates := make([]string, 0)
	seen := map[string]struct{}{}

	for _, filesystem := range filesystems {
		for _, pattern := range []string{"templates/views/*.gohtml", "templates/layouts/*.gohtml"} {
			// Globbing each filesystem on its own, the merged one logs every
			// missing directory.
			matches, err := fs.Glob(filesystem, pattern)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			for _, m := range matches {
				if _, exists := seen[m]; exists {
					return nil, errors.Wrapf(ErrDuplicateTemplate, "template file '%s' is provided by more than one filesystem", m)
				}

				seen[m] = struct{}{}
				templates = append(templates, m)
			}
		}
	}

	merged := mergefs.Merge(filesystems...)

	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(commonFuncs)

	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}

	tmpl, err := tmpl.ParseFS(merged, templates...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}

type HeadTemplateData struct {
	PageTitle string
}

// MessageTemplateData renders a short notice page with a single action.
type MessageTemplateData struct {
	HeadTemplateData
	NavbarTemplateData
	Title     string
	Text      string
	LinkURL   string
	LinkLabel string
}
