package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/utils"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Heading renders a section title.
func Heading(s string) string {
	return headingStyle.Render(s)
}

// FormatTask renders one task as a checklist line.
func FormatTask(task models.Task, loc *time.Location) string {
	box := "[ ]"
	title := task.Title
	if task.IsCompleted {
		box = doneStyle.Render("[x]")
		title = doneStyle.Render(title)
	}

	var meta []string
	if task.IsRecurring {
		meta = append(meta, string(models.TaskKindDaily))
	} else {
		meta = append(meta, utils.AnchorKey(task.Date))
	}
	if task.CompletedAt != nil {
		meta = append(meta, "done "+task.CompletedAt.In(loc).Format(constants.ClockFormat))
	}
	return fmt.Sprintf("%s %s %s", box, title, mutedStyle.Render("("+strings.Join(meta, ", ")+") "+task.ID))
}

// PrintTasks writes a titled task list, or a placeholder when empty.
func PrintTasks(w io.Writer, title string, tasks []models.Task, loc *time.Location, empty string) {
	fmt.Fprintln(w, Heading(title))
	if len(tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  "+empty))
		return
	}
	for _, task := range tasks {
		fmt.Fprintln(w, "  "+FormatTask(task, loc))
	}
}

// PrintHistory writes grouped history, one heading per day.
func PrintHistory(w io.Writer, groups []models.HistoryGroup, loc *time.Location) {
	if len(groups) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No completed tasks yet."))
		return
	}
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, Heading(group.Date.In(loc).Format(constants.DisplayDateFormat)))
		for _, rec := range group.Records {
			fmt.Fprintf(w, "  %s  %s\n", mutedStyle.Render(rec.CompletedAt.In(loc).Format(constants.ClockFormat)), rec.Title)
		}
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
