package ui

import (
	"strings"

	"github.com/mcao2/tasks-research/internal/sanitize"
	"github.com/mcao2/tasks-research/internal/tasks"
	"github.com/mcao2/tasks-research/internal/workflow"
)

// Route is what the next run would do with a task.
type Route string

const (
	RouteSimple   Route = "simple"
	RouteResearch Route = "research"
	RouteFailed   Route = "failed"
	RouteNoTitle  Route = "no title"
)

// Item is one row of the preview.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	WorkingTitle string `json:"working_title"`
	Route        Route  `json:"route"`
}

// BuildItems predicts the route of each task without calling any model.
func BuildItems(list []tasks.Task, classifier sanitize.Classifier) []Item {
	items := make([]Item, 0, len(list))
	for _, t := range list {
		item := Item{ID: t.ID, Title: t.Title}
		switch {
		case strings.HasPrefix(t.Title, workflow.FailedTitle):
			item.Route = RouteFailed
		case strings.TrimSpace(t.Title) == "":
			item.Route = RouteNoTitle
		default:
			item.WorkingTitle = sanitize.PreprocessTitle(t.Title)
			if classifier.IsSimple(item.WorkingTitle) {
				item.Route = RouteSimple
			} else {
				item.Route = RouteResearch
			}
		}
		items = append(items, item)
	}
	return items
}

func routeText(r Route) string {
	switch r {
	case RouteSimple:
		return "✔ Simple"
	case RouteResearch:
		return "🔎 Research"
	case RouteFailed:
		return "✗ Failed"
	case RouteNoTitle:
		return "· Empty"
	default:
		return "  —"
	}
}
