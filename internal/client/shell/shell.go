// Package shell is the interactive terminal surface over the todo and user
// views: a line-oriented REPL, field prompts and table rendering.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/atinyakov/tasktracker/internal/client/view"
)

const helpText = `Available commands:
  todos              list todos
  add                create a todo
  edit <id>          edit a todo
  toggle <id>        flip a todo between Done and In progress
  rm <id>            delete a todo
  users              list users
  adduser            register a user
  edituser <id>      edit a user
  rmuser <id>        delete a user
  refresh            re-fetch both lists
  help, exit`

// Shell runs the REPL.
type Shell struct {
	Todos *view.TodoView
	Users *view.UserView
	In    io.Reader
	Out   io.Writer
}

// Run mounts both views, then reads commands until "exit" or end of input.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.Todos.Mount(ctx); err != nil {
		Fail(s.Out, err.Error())
	}
	if err := s.Users.Mount(ctx); err != nil {
		Fail(s.Out, err.Error())
	}

	sc := bufio.NewScanner(s.In)
	for {
		fmt.Fprint(s.Out, "tasktracker> ")
		if !sc.Scan() {
			fmt.Fprintln(s.Out)
			return sc.Err()
		}
		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			fmt.Fprintln(s.Out, "Bye")
			return nil
		}
		if err := s.dispatch(ctx, sc, args); err != nil {
			Fail(s.Out, err.Error())
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, sc *bufio.Scanner, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.Out, helpText)
		return nil
	case "todos":
		RenderTodos(s.Out, s.Todos.Records())
		return nil
	case "users":
		RenderUsers(s.Out, s.Users.Records())
		return nil
	case "refresh":
		return multierr.Combine(s.Todos.Refresh(ctx), s.Users.Refresh(ctx))
	case "add":
		s.Todos.SetDraft(PromptTodoDraft(sc, s.Out))
		return s.afterTodos(s.Todos.Submit(ctx))
	case "adduser":
		s.Users.SetDraft(PromptUserDraft(sc, s.Out))
		return s.afterUsers(s.Users.Submit(ctx))
	}

	switch args[0] {
	case "edit", "toggle", "rm", "edituser", "rmuser":
	default:
		return fmt.Errorf("unknown command %q, type 'help' for a list of commands", args[0])
	}
	id, err := idArg(args)
	if err != nil {
		return err
	}
	switch args[0] {
	case "edit":
		if err := s.Todos.StartEditing(id); err != nil {
			return err
		}
		cur, _ := s.Todos.Editing()
		if err := s.Todos.SetEditing(PromptTodoEdit(sc, s.Out, cur)); err != nil {
			return err
		}
		return s.afterTodos(s.Todos.SaveEditing(ctx))
	case "toggle":
		return s.afterTodos(s.Todos.Toggle(ctx, id))
	case "rm":
		return s.afterTodos(s.Todos.Remove(ctx, id))
	case "edituser":
		if err := s.Users.StartEditing(id); err != nil {
			return err
		}
		cur, _ := s.Users.Editing()
		if err := s.Users.SetEditing(PromptUserEdit(sc, s.Out, cur)); err != nil {
			return err
		}
		return s.afterUsers(s.Users.SaveEditing(ctx))
	case "rmuser":
		return s.afterUsers(s.Users.Remove(ctx, id))
	}
	return nil
}

func (s *Shell) afterTodos(err error) error {
	RenderTodos(s.Out, s.Todos.Records())
	return err
}

func (s *Shell) afterUsers(err error) error {
	RenderUsers(s.Out, s.Users.Records())
	return err
}

func idArg(args []string) (int64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: %s <id>", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: not a valid id: %s", args[0], args[1])
	}
	return id, nil
}
