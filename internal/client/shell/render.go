package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atinyakov/tasktracker/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

func row(cells ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Status is the label shown for a completion flag.
func Status(done bool) string {
	if done {
		return "Done"
	}
	return "In progress"
}

// RenderTodos writes the todo table.
func RenderTodos(w io.Writer, todos []models.Todo) {
	var done int
	for _, t := range todos {
		if t.Done {
			done++
		}
	}
	fmt.Fprintf(w, "%s  %s %d  %s %d\n",
		headerStyle.Render("Todos"),
		doneStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
	)
	if len(todos) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(no todos)"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(row(cell("ID", 6), cell("Title", 32), cell("Person", 16), cell("Status", 12))))
	for _, t := range todos {
		status := pendingStyle.Render(Status(t.Done))
		if t.Done {
			status = doneStyle.Render(Status(t.Done))
		}
		fmt.Fprintln(w, row(cell(strconv.FormatInt(t.ID, 10), 6), cell(t.Title, 32), cell(t.Person, 16), cell(status, 12)))
	}
}

// RenderUsers writes the user table.
func RenderUsers(w io.Writer, users []models.User) {
	fmt.Fprintf(w, "%s  %d\n", headerStyle.Render("Users"), len(users))
	if len(users) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(no users)"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(row(cell("ID", 6), cell("Name", 20), cell("Email", 28), cell("Phone", 16))))
	for _, u := range users {
		fmt.Fprintln(w, row(cell(strconv.FormatInt(u.ID, 10), 6), cell(u.Name, 20), cell(u.Email, 28), cell(u.PhoneNumber, 16)))
	}
}

// Fail writes an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+strings.TrimSpace(msg)))
}
