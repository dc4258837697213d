package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/atinyakov/tasktracker/internal/client/shell"
	"github.com/atinyakov/tasktracker/internal/models"
)

func idArg(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: expected a record id, got %q", c.Command.Name, raw)
	}
	return id, nil
}

func todoCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "todo",
		Aliases: []string{"t"},
		Usage:   "manage todos",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "list todos",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "completed", Usage: "show only completed items"},
					&cli.BoolFlag{Name: "incompleted", Usage: "show only incompleted items"},
				},
				Action: action(in, out, func(c *cli.Context, e *env) error {
					if err := e.todos.Mount(c.Context); err != nil {
						return err
					}
					var shown []models.Todo
					for _, t := range e.todos.Records() {
						if c.Bool("completed") && !t.Done || c.Bool("incompleted") && t.Done {
							continue
						}
						shown = append(shown, t)
					}
					shell.RenderTodos(e.out, shown)
					return nil
				}),
			},
			{
				Name:      "add",
				Aliases:   []string{"a"},
				Usage:     "add a todo",
				ArgsUsage: "<title...>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "person", Aliases: []string{"p"}, Usage: "assignee"},
				},
				Action: action(in, out, func(c *cli.Context, e *env) error {
					e.todos.SetDraft(models.Todo{
						Title:  strings.Join(c.Args().Slice(), " "),
						Person: c.String("person"),
					})
					err := e.todos.Submit(c.Context)
					shell.RenderTodos(e.out, e.todos.Records())
					return err
				}),
			},
			{
				Name:      "edit",
				Usage:     "replace a todo's fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "new title"},
					&cli.StringFlag{Name: "person", Aliases: []string{"p"}, Usage: "new assignee"},
					&cli.BoolFlag{Name: "done", Usage: "completion flag"},
				},
				Action: action(in, out, func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err := e.todos.Mount(c.Context); err != nil {
						return err
					}
					if err := e.todos.StartEditing(id); err != nil {
						return fmt.Errorf("todo %d: %w", id, err)
					}
					rec, _ := e.todos.Editing()
					if c.IsSet("title") {
						rec.Title = c.String("title")
					}
					if c.IsSet("person") {
						rec.Person = c.String("person")
					}
					if c.IsSet("done") {
						rec.Done = c.Bool("done")
					}
					if err := e.todos.SetEditing(rec); err != nil {
						return err
					}
					err = e.todos.SaveEditing(c.Context)
					shell.RenderTodos(e.out, e.todos.Records())
					return err
				}),
			},
			{
				Name:      "toggle",
				Usage:     "flip a todo between Done and In progress",
				ArgsUsage: "<id>",
				Action: action(in, out, func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err := e.todos.Mount(c.Context); err != nil {
						return err
					}
					err = e.todos.Toggle(c.Context, id)
					shell.RenderTodos(e.out, e.todos.Records())
					return err
				}),
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "delete a todo",
				ArgsUsage: "<id>",
				Action: action(in, out, func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					err = e.todos.Remove(c.Context, id)
					shell.RenderTodos(e.out, e.todos.Records())
					return err
				}),
			},
		},
	}
}

func userCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "manage users",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "list users",
				Action: action(in, out, func(c *cli.Context, e *env) error {
					if err := e.users.Mount(c.Context); err != nil {
						return err
					}
					shell.RenderUsers(e.out, e.users.Records())
					return nil
				}),
			},
			{
				Name:  "add",
				Usage: "register a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "phone"},
				},
				Action: action(in, out, func(c *cli.Context, e *env) error {
					e.users.SetDraft(models.User{
						Name:        c.String("name"),
						Email:       c.String("email"),
						PhoneNumber: c.String("phone"),
					})
					err := e.users.Submit(c.Context)
					shell.RenderUsers(e.out, e.users.Records())
					return err
				}),
			},
			{
				Name:      "edit",
				Usage:     "replace a user's fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
				},
				Action: action(in, out, func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err := e.users.Mount(c.Context); err != nil {
						return err
					}
					if err := e.users.StartEditing(id); err != nil {
						return fmt.Errorf("user %d: %w", id, err)
					}
					rec, _ := e.users.Editing()
					if c.IsSet("name") {
						rec.Name = c.String("name")
					}
					if c.IsSet("email") {
						rec.Email = c.String("email")
					}
					if c.IsSet("phone") {
						rec.PhoneNumber = c.String("phone")
					}
					if err := e.users.SetEditing(rec); err != nil {
						return err
					}
					err = e.users.SaveEditing(c.Context)
					shell.RenderUsers(e.out, e.users.Records())
					return err
				}),
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "delete a user",
				ArgsUsage: "<id>",
				Action: action(in, out, func(c *cli.Context, e *env) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					err = e.users.Remove(c.Context, id)
					shell.RenderUsers(e.out, e.users.Records())
					return err
				}),
			},
		},
	}
}
