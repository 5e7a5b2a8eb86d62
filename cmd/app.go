package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dtroode/creatorhub/internal/api"
	"github.com/dtroode/creatorhub/internal/apiclient"
	"github.com/dtroode/creatorhub/internal/config"
	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/service"
	"github.com/dtroode/creatorhub/internal/session"
)

const exitUsage = 2

// errUsage is returned after the usage text has been printed.
var errUsage = errors.New("invalid usage")

const usageText = `Usage: creatorhub <command> [options]

Commands:
  login      -email <email> [-password <password> | -password-stdin]
  logout
  whoami
  users      list | create | update | delete
  fans       list | create
  content    list | create
  images     list | create
  messages   list | send
  profile    show | update | settings | social | avatar
  dashboard  [-watch[=<interval>]] [-metrics-addr <addr>]
  version

Run "creatorhub <command> <subcommand> -h" for the options of a command.
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

type handler func(ctx context.Context, args []string) error

type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	sessions model.SessionStore
	api      *api.Set
	auth     *service.Auth

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

func newApp(cfg *config.Config, logger *logger.Logger, sessions model.SessionStore, in io.Reader, out, errOut io.Writer) (*app, error) {
	client, err := apiclient.New(cfg.API.URL, sessions,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	set := api.New(client)

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		api:      set,
		auth:     service.NewAuth(set.Auth, sessions, logger),
		in:       in,
		out:      out,
		errOut:   errOut,
		now:      time.Now,
	}, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.SessionStore, func(), error) {
	if cfg.Session.Backend == config.SessionBackendRedis {
		store, err := session.NewRedisStore(ctx, cfg.Session.RedisURL, cfg.Session.RedisKey, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close session store", "error", err)
			}
		}, nil
	}
	return session.NewFileStore(cfg.Session.File), func() {}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage(a.errOut)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "whoami":
		return a.whoami(ctx, rest)
	case "users":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"list":   a.usersList,
			"create": a.usersCreate,
			"update": a.usersUpdate,
			"delete": a.usersDelete,
		})
	case "fans":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"list":   a.fansList,
			"create": a.fansCreate,
		})
	case "content":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"list":   a.contentList,
			"create": a.contentCreate,
		})
	case "images":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"list":   a.imagesList,
			"create": a.imagesCreate,
		})
	case "messages":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"list": a.messagesList,
			"send": a.messagesSend,
		})
	case "profile":
		return a.dispatch(ctx, cmd, rest, map[string]handler{
			"show":     a.profileShow,
			"update":   a.profileUpdate,
			"settings": a.profileSettings,
			"social":   a.profileSocial,
			"avatar":   a.profileAvatar,
		})
	case "dashboard":
		return a.dashboard(ctx, rest)
	case "version":
		logAppVersion(a.out)
		return nil
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	}

	fmt.Fprintf(a.errOut, "Unknown command: %s\n", cmd)
	printUsage(a.errOut)
	return errUsage
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, subs map[string]handler) error {
	names := slices.Sorted(maps.Keys(subs))
	if len(args) == 0 {
		fmt.Fprintf(a.errOut, "Usage: creatorhub %s <%s>\n", cmd, strings.Join(names, "|"))
		return errUsage
	}
	h, ok := subs[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "Unknown %s command: %s\n", cmd, args[0])
		fmt.Fprintf(a.errOut, "Usage: creatorhub %s <%s>\n", cmd, strings.Join(names, "|"))
		return errUsage
	}
	return h(ctx, args[1:])
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse parses args and rejects positional leftovers and missing required flags.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	for _, name := range required {
		if f := fs.Lookup(name); f != nil && f.Value.String() == "" {
			fmt.Fprintf(fs.Output(), "-%s is required\n", name)
			fs.PrintDefaults()
			return errUsage
		}
	}
	return nil
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func optionalString(set map[string]bool, name string, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

func optionalBool(set map[string]bool, name string, value bool) *bool {
	if !set[name] {
		return nil
	}
	return &value
}

// exitCode reports err on w and maps it to a process exit status.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return exitUsage
	}
	fmt.Fprintf(w, "Error: %s\n", describeError(err))
	return 1
}

func describeError(err error) string {
	if apiErr, ok := model.AsAPIError(err); ok {
		if apiErr.Unauthorized() {
			return fmt.Sprintf("%s (run \"creatorhub login\")", apiErr.Message)
		}
		return fmt.Sprintf("%s (status %d)", apiErr.Message, apiErr.Status)
	}
	switch {
	case errors.Is(err, model.ErrNotSignedIn):
		return "not signed in (run \"creatorhub login\")"
	case errors.Is(err, model.ErrSessionExpired):
		return "the backend issued an expired session token"
	case errors.Is(err, model.ErrTimeout):
		return "the backend did not answer in time"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	}
	return err.Error()
}
