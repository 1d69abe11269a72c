package web

import (
	"strconv"

	"github.com/driftwoodlabs/showfloor/internal/models"
)

// StatView is a single labeled counter on the landing page.
type StatView struct {
	Label string
	Value string
}

// LandingView is the data behind the landing page.
type LandingView struct {
	Title   string
	Tagline string
	Live    bool
	Stats   []StatView
}

// landingStats fixes the order and wording of the landing page counters.
var landingStats = []struct {
	metric string
	label  string
}{
	{models.MetricTotalUsers, "Team members"},
	{models.MetricTotalProjects, "Projects"},
	{models.MetricActiveProjects, "In progress"},
	{models.MetricCompletedProjects, "Delivered"},
}

// staticLandingView is the landing page without a database: same layout,
// placeholder values.
func staticLandingView() LandingView {
	view := LandingView{
		Title:   "Showfloor",
		Tagline: "The project floor of Driftwood Studio",
	}
	for _, s := range landingStats {
		view.Stats = append(view.Stats, StatView{Label: s.label, Value: "-"})
	}
	return view
}

func landingView(metrics []*models.Metric) LandingView {
	byName := make(map[string]int64, len(metrics))
	for _, m := range metrics {
		byName[m.Name] = m.Value
	}

	view := LandingView{
		Title:   "Showfloor",
		Tagline: "The project floor of Driftwood Studio",
		Live:    true,
	}
	for _, s := range landingStats {
		view.Stats = append(view.Stats, StatView{
			Label: s.label,
			Value: strconv.FormatInt(byName[s.metric], 10),
		})
	}
	return view
}

// DashboardView is the data behind the dashboard page.
type DashboardView struct {
	Users    []*models.User
	Projects []*models.Project
	Metrics  []*models.Metric
}
