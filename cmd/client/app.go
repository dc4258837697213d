package main

import (
	"cmp"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/atinyakov/tasktracker/internal/client/collection"
	"github.com/atinyakov/tasktracker/internal/client/shell"
	"github.com/atinyakov/tasktracker/internal/client/view"
	"github.com/atinyakov/tasktracker/internal/config"
	"github.com/atinyakov/tasktracker/internal/logger"
	"github.com/atinyakov/tasktracker/internal/models"
)

// env holds what every command needs once flags are resolved.
type env struct {
	todos *view.TodoView
	users *view.UserView
	log   *logger.Logger
	in    io.Reader
	out   io.Writer
}

// loadOptions layers defaults, the TOML file, then environment and flags.
func loadOptions(c *cli.Context) (*config.Options, error) {
	opts := config.Default()
	if err := config.Load(c.String("config"), opts); err != nil {
		return nil, err
	}
	if c.IsSet("url") {
		opts.BaseURL = c.String("url")
	}
	if c.IsSet("timeout") {
		opts.Timeout = c.Duration("timeout")
	}
	if c.IsSet("strict") {
		opts.Strict = c.Bool("strict")
	}
	if c.IsSet("ca") {
		opts.CAFile = c.String("ca")
	}
	if c.IsSet("log-level") {
		opts.LogLevel = c.String("log-level")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func newEnv(c *cli.Context, in io.Reader, out io.Writer) (*env, error) {
	opts, err := loadOptions(c)
	if err != nil {
		return nil, err
	}

	log := logger.New()
	if err := log.Init(opts.LogLevel); err != nil {
		return nil, err
	}

	httpClient, err := collection.NewHTTPClient(opts.Timeout, opts.CAFile)
	if err != nil {
		return nil, err
	}

	var (
		todos collection.Collection[models.Todo] = collection.NewTodos(httpClient, opts.BaseURL, log.Log)
		users collection.Collection[models.User] = collection.NewUsers(httpClient, opts.BaseURL, log.Log)
	)
	if !opts.Strict {
		todos = collection.NewFailSoft(todos, log.Log)
		users = collection.NewFailSoft(users, log.Log)
	}
	log.Log.Debug("client configured",
		zap.String("base_url", opts.BaseURL),
		zap.Duration("timeout", opts.Timeout),
		zap.Bool("strict", opts.Strict),
	)

	return &env{
		todos: view.NewTodoView(todos, log.Log),
		users: view.NewUserView(users, log.Log),
		log:   log,
		in:    in,
		out:   out,
	}, nil
}

func (e *env) close() {
	e.todos.Close()
	e.users.Close()
	_ = e.log.Log.Sync()
}

// action wraps a command body with environment setup and teardown.
func action(in io.Reader, out io.Writer, fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := newEnv(c, in, out)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(c, e)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "tasktracker",
		Usage:     "track todos and users against a remote collection service",
		Version:   fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultConfigFile,
				Usage:   "path to TOML config file",
				EnvVars: []string{config.EnvConfig},
			},
			&cli.StringFlag{
				Name:    "url",
				Value:   config.DefaultBaseURL,
				Usage:   "collection service base URL",
				EnvVars: []string{config.EnvBaseURL},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   config.DefaultTimeout,
				Usage:   "per-request timeout (0 keeps the transport default)",
				EnvVars: []string{config.EnvTimeout},
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "report collection errors instead of swallowing them",
				EnvVars: []string{config.EnvStrict},
			},
			&cli.StringFlag{
				Name:    "ca",
				Usage:   "PEM CA bundle trusted for https URLs",
				EnvVars: []string{config.EnvCAFile},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   config.DefaultLogLevel,
				Usage:   "debug | info | warn | error",
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Commands: []*cli.Command{
			todoCommand(in, out),
			userCommand(in, out),
			{
				Name:  "shell",
				Usage: "interactive shell",
				Action: action(in, out, func(c *cli.Context, e *env) error {
					sh := &shell.Shell{Todos: e.todos, Users: e.users, In: e.in, Out: e.out}
					return sh.Run(c.Context)
				}),
			},
		},
	}
}
