package shop

import (
	"context"
	"embed"
	"html/template"

	"github.com/jofrance/billeterie/internal/authn"
	"github.com/jofrance/billeterie/internal/store"
	"github.com/jofrance/billeterie/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

type HomeTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
}

type OffersTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Offers []*store.Offer
}

type OrdersTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Cart []*store.Order
	Paid []*store.Order
}

type PaymentTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Order *store.Order
}

type TicketTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Payment *store.Payment
}

func navbar(ctx context.Context) ui.NavbarTemplateData {
	user, err := authn.ContextUser(ctx)
	if err != nil {
		return ui.NewNavbar("")
	}

	return ui.NewNavbar(user.Email)
}
