package http

import "ultracare-admin/internal/dashboard/application"

// NavItem is one sidebar entry.
type NavItem struct {
	ID    string
	Label string
	Path  string
}

// NavItems is the sidebar, in display order.
var NavItems = []NavItem{
	{ID: application.PageOverview, Label: "Overview", Path: "/"},
	{ID: application.PageHouseholds, Label: "Household Admins", Path: "/households"},
	{ID: application.PageUsers, Label: "Users", Path: "/users"},
	{ID: application.PageSubscriptions, Label: "Subscriptions", Path: "/subscriptions"},
	{ID: application.PageDevices, Label: "Devices", Path: "/devices"},
	{ID: application.PageAlerts, Label: "Alerts", Path: "/alerts"},
	{ID: application.PageHealth, Label: "System Health", Path: "/health"},
	{ID: application.PageSettings, Label: "Settings", Path: "/settings"},
}

var pageTitles = map[string]string{
	application.PageHealth:     "System Health",
	application.PageHouseholds: "Household Admins",
	application.PageAlerts:     "Alerts",
}

// PageTitle is the header shown for a page.
func PageTitle(page string) string {
	if title, ok := pageTitles[page]; ok {
		return title
	}
	for _, item := range NavItems {
		if item.ID == page {
			return item.Label
		}
	}
	return "Overview"
}
