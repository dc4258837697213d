package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/tasktracker/internal/models"
)

func ask(sc *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

// askKeep asks for a value, keeping current when the answer is empty.
func askKeep(sc *bufio.Scanner, out io.Writer, label, current string) string {
	v := ask(sc, out, fmt.Sprintf("%s [%s]: ", label, current))
	if v == "" {
		return current
	}
	return v
}

// PromptTodoDraft reads a new todo's fields.
func PromptTodoDraft(sc *bufio.Scanner, out io.Writer) models.Todo {
	return models.Todo{
		Title:  ask(sc, out, "Title: "),
		Person: ask(sc, out, "Person: "),
	}
}

// PromptTodoEdit reads replacement fields for cur. Empty answers keep the
// current value.
func PromptTodoEdit(sc *bufio.Scanner, out io.Writer, cur models.Todo) models.Todo {
	cur.Title = askKeep(sc, out, "Title", cur.Title)
	cur.Person = askKeep(sc, out, "Person", cur.Person)
	if v := ask(sc, out, fmt.Sprintf("Done (y/n) [%s]: ", yn(cur.Done))); v != "" {
		if b, err := parseBool(v); err == nil {
			cur.Done = b
		} else {
			fmt.Fprintf(out, "Ignoring %q: %v\n", v, err)
		}
	}
	return cur
}

// PromptUserDraft reads a new user's fields.
func PromptUserDraft(sc *bufio.Scanner, out io.Writer) models.User {
	return models.User{
		Name:        ask(sc, out, "Name: "),
		Email:       ask(sc, out, "Email: "),
		PhoneNumber: ask(sc, out, "Phone number: "),
	}
}

// PromptUserEdit reads replacement fields for cur.
func PromptUserEdit(sc *bufio.Scanner, out io.Writer, cur models.User) models.User {
	cur.Name = askKeep(sc, out, "Name", cur.Name)
	cur.Email = askKeep(sc, out, "Email", cur.Email)
	cur.PhoneNumber = askKeep(sc, out, "Phone number", cur.PhoneNumber)
	return cur
}

func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
