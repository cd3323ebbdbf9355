package admin

import (
	"context"
	"embed"
	"html/template"
	"strconv"

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

// AdminTemplateData is shared by every administration page
type AdminTemplateData struct {
	ui.HeadTemplateData
	Username string
}

type DashboardTemplateData struct {
	AdminTemplateData
	Offers        []*store.Offer
	Stats         []*store.OfferStats
	UserCount     int64
	TurnoverCents int64
	Persons       int64
}

type OrdersTemplateData struct {
	AdminTemplateData
	Status   store.OrderStatus
	Label    string
	Statuses []StatusFilter
	Page     store.Page[*store.Order]
}

type UsersTemplateData struct {
	AdminTemplateData
	Page store.Page[*store.User]
}

// StatusFilter is a link of the orders status filter
type StatusFilter struct {
	Status  store.OrderStatus
	Label   string
	Current bool
}

var statusLabels = map[store.OrderStatus]string{
	store.OrderStatusPaid:     "Payés",
	store.OrderStatusDraft:    "Brouillons",
	store.OrderStatusCanceled: "Annulés",
}

func newAdminTemplateData(ctx context.Context, title string) AdminTemplateData {
	data := AdminTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: title,
		},
	}

	if user, err := authn.ContextUser(ctx); err == nil {
		data.Username = user.Email
	}

	return data
}

func newStatusFilters(current store.OrderStatus) []StatusFilter {
	filters := make([]StatusFilter, 0, len(store.OrderStatuses))
	for _, s := range store.OrderStatuses {
		filters = append(filters, StatusFilter{
			Status:  s,
			Label:   statusLabels[s],
			Current: s == current,
		})
	}

	return filters
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}

	return page
}
