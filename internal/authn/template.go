package authn

import (
	"context"
	"embed"
	"html/template"

	"github.com/jofrance/billeterie/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**/*.gohtml
var fs embed.FS

var templates *template.Template

func init() {
	t, err := ui.Templates(nil, fs)
	if err != nil {
		panic(errors.WithStack(err))
	}
	templates = t
}

type FormTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
}

func navbar(ctx context.Context) ui.NavbarTemplateData {
	user, err := ContextUser(ctx)
	if err != nil {
		return ui.NewNavbar("")
	}

	return ui.NewNavbar(user.Email)
}
