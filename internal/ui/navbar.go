package ui

type NavbarItem struct {
	Label string
	URL   string
}

type NavbarTemplateData struct {
	// Email of the logged in user, empty for anonymous visitors
	Email       string
	NavbarItems []NavbarItem
}

var (
	NavbarItemHome     = NavbarItem{Label: "🏅 JO France", URL: "/"}
	NavbarItemOffers   = NavbarItem{Label: "Offres", URL: "/offers"}
	NavbarItemLogin    = NavbarItem{Label: "Connexion", URL: "/login"}
	NavbarItemRegister = NavbarItem{Label: "Inscription", URL: "/register"}
	NavbarItemOrders   = NavbarItem{Label: "Mes commandes", URL: "/my/orders"}
	NavbarItemLogout   = NavbarItem{Label: "Déconnexion", URL: "/logout"}
)

// NewNavbar returns the public menu of a visitor.
func NewNavbar(email string) NavbarTemplateData {
	if email == "" {
		return NavbarTemplateData{
			NavbarItems: []NavbarItem{NavbarItemHome, NavbarItemOffers, NavbarItemLogin, NavbarItemRegister},
		}
	}

	return NavbarTemplateData{
		Email:       email,
		NavbarItems: []NavbarItem{NavbarItemHome, NavbarItemOffers, NavbarItemOrders},
	}
}
