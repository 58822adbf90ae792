package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/analytics"
)

func csrfInput(token string) g.Node {
	return h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(token))
}

// AdminLogin renders the password form.
func AdminLogin(p Page, showError bool) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.H1(g.Text("Admin")),
			g.If(showError, h.P(h.Class("form-error"), attr("role", "alert"), g.Text("Wrong password."))),
			el("form", h.Class("login"), attr("method", "post"), attr("action", "/admin/login/"),
				csrfInput(p.CSRFToken),
				el("label", attr("for", "password"), g.Text("Password")),
				h.Input(h.Type("password"), h.ID("password"), h.Name("password"), attr("autocomplete", "current-password"), attr("required")),
				h.Button(h.Type("submit"), g.Text("Sign in")),
			),
		)
	})
}

var periods = [][2]string{{"today", "Today"}, {"week", "7 days"}, {"month", "30 days"}, {"year", "12 months"}}

// AdminDashboard shows traffic and share analytics. s is nil when analytics
// is disabled.
func AdminDashboard(p Page, s *analytics.StatsResponse) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.Div(h.Class("admin-bar"),
				h.H1(g.Text("Dashboard")),
				el("form", attr("method", "post"), attr("action", "/admin/logout/"),
					csrfInput(p.CSRFToken),
					h.Button(h.Type("submit"), g.Text("Sign out")),
				),
			),
			g.If(s == nil, h.P(h.Class("empty"), g.Text("Analytics is disabled."))),
			g.Iff(s != nil, func() g.Node { return dashboard(s) }),
		)
	})
}

func dashboard(s *analytics.StatsResponse) g.Node {
	st := s.Stats
	return g.Group{
		h.Nav(h.Class("periods"), attr("aria-label", "Period"),
			g.Map(periods, func(pr [2]string) g.Node {
				return h.A(h.Class(TagClass(pr[0] == s.Period)), h.Href("/admin/?period="+pr[0]), g.Text(pr[1]))
			}),
		),
		h.Div(h.Class("stat-cards"),
			statCard("Views", st.TotalViews),
			statCard("Visitors", st.UniqueVisitors),
			statCard("Shares", st.TotalShares),
			statCard("Online now", s.Realtime),
			statCard("Bot visits", s.Bots.TotalVisits),
		),
		h.Div(h.Class("stat-tables"),
			pageTable("Top pages", "Views", st.TopPages),
			dimTable("Shares by platform", st.ShareStats),
			pageTable("Most shared", "Shares", st.TopShared),
			dimTable("Referrers", st.ReferrerStats),
			dimTable("Browsers", st.BrowserStats),
			dimTable("Operating systems", st.OSStats),
			dimTable("Devices", st.DeviceStats),
			dimTable("Bots", s.Bots.TopBots),
		),
	}
}

func statCard(label string, n int) g.Node {
	return h.Div(h.Class("stat-card"),
		h.P(h.Class("stat-value"), g.Text(strconv.Itoa(n))),
		h.P(h.Class("stat-label"), g.Text(label)),
	)
}

func table(title, col string, rows []g.Node) g.Node {
	return h.Section(h.Class("stat-table"),
		h.H2(g.Text(title)),
		g.If(len(rows) == 0, h.P(h.Class("empty"), g.Text("No data yet."))),
		g.If(len(rows) > 0, h.Table(
			el("thead", h.Tr(h.Th(g.Text("Name")), h.Th(g.Text(col)))),
			el("tbody", g.Group(rows)),
		)),
	)
}

func row(name string, n int) g.Node {
	return h.Tr(h.Td(g.Text(name)), h.Td(g.Text(strconv.Itoa(n))))
}

func dimTable(title string, dims []analytics.DimensionStat) g.Node {
	rows := make([]g.Node, len(dims))
	for i, d := range dims {
		rows[i] = row(d.Name, d.Count)
	}
	return table(title, "Count", rows)
}

func pageTable(title, col string, pages []analytics.PageStat) g.Node {
	rows := make([]g.Node, len(pages))
	for i, p := range pages {
		rows[i] = row(p.Path, p.Views)
	}
	return table(title, col, rows)
}
