// Package adminheader provides the fixed navigation header shared by every
// admin page and the means to inject it into a rendered document.
package adminheader

// ContainerID identifies the host page element receiving the header.
const ContainerID = "global-admin-header"

// NavLink is an entry of the admin navigation bar.
type NavLink struct {
	Label string
	URL   string
}

// Links lists the admin navigation entries, in display order.
var Links = []NavLink{
	{Label: "🏅 JO France", URL: "/"},
	{Label: "Admin", URL: "/admin"},
	{Label: "Billeterie", URL: "/admin/orders?status=paid"},
	{Label: "Utilisateurs", URL: "/admin/users/list"},
}

// Fragment is the markup written into the container. It must stay in sync
// with Links.
const Fragment = `<header class="wrap">
  <div class="nav admin-nav">
    <a href="/">🏅 JO France</a>
    <a href="/admin">Admin</a>
    <a href="/admin/orders?status=paid">Billeterie</a>
    <a href="/admin/users/list">Utilisateurs</a>
  </div>
</header>`
