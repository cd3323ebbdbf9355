package authn

import (
	"net/http"

	"github.com/jofrance/billeterie/internal/ui"
)

func (h *Handler) getLoginPage(w http.ResponseWriter, r *http.Request) {
	data := FormTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Connexion",
		},
		NavbarTemplateData: navbar(r.Context()),
	}

	ui.Render(w, r, templates, http.StatusOK, "login", data)
}

func (h *Handler) getRegisterPage(w http.ResponseWriter, r *http.Request) {
	data := FormTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Inscription",
		},
		NavbarTemplateData: navbar(r.Context()),
	}

	ui.Render(w, r, templates, http.StatusOK, "register", data)
}
