package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WelcomerTeam/Discord/config"
	"github.com/WelcomerTeam/Discord/discord"
	"github.com/WelcomerTeam/Discord/state"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const usage = `usage: discordctl [flags] <command> [arguments]

commands:
  snowflake <id>...                     print the creation time of snowflakes
  cdn <avatar|icon|role-icon|event-image|app-icon> <id> <hash>
                                        print a CDN url
  webhook-delete <url | id>             delete a webhook, using its token when given a url
  event-delete <guild_id> <event_id>    delete a scheduled event
  widget <guild_id>                     print a guild's widget

flags:
`

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("discordctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "discord.yaml", "path of the YAML configuration")
	envFile := flags.String("env", ".env", "env file loaded before reading the environment")
	reason := flags.String("reason", "", "audit log reason sent with destructive requests")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Stamp}).With().Timestamp().Logger()

	configuration, err := config.NewConfigProviderFromPath(*configPath, *envFile, logger).GetConfig(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")

		return 1
	}

	logger = newLogger(configuration.Logging, stderr).Level(configuration.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := &cli{
		logger: logger,
		stdout: stdout,
		reason: *reason,
	}

	if err := cli.open(configuration); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")

		return 1
	}

	if err := cli.dispatch(ctx, flags.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flags.Usage()

			return 2
		}

		logger.Error().Err(err).Msg("Command failed")

		return 1
	}

	return 0
}

// newLogger writes to stderr and, when configured, to a rotated JSON file.
func newLogger(configuration config.LoggingConfiguration, stderr io.Writer) zerolog.Logger {
	var console io.Writer = stderr
	if configuration.Console {
		console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Stamp}
	}

	if configuration.File == "" {
		return zerolog.New(console).With().Timestamp().Logger()
	}

	file := &lumberjack.Logger{
		Filename:   configuration.File,
		MaxSize:    configuration.MaxSize,
		MaxBackups: configuration.MaxBackups,
		MaxAge:     configuration.MaxAge,
		Compress:   configuration.Compress,
	}

	return zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
}

type cli struct {
	session *discord.Session
	logger  zerolog.Logger
	stdout  io.Writer
	reason  string
}

func (c *cli) open(configuration *config.Configuration) error {
	var rest *discord.BaseInterface

	if configuration.REST.ProxyURL != "" {
		proxy, err := url.Parse(configuration.REST.ProxyURL)
		if err != nil {
			return fmt.Errorf("failed to parse proxy url: %w", err)
		}

		rest = discord.NewTwilightProxy(*proxy, c.logger)
	} else {
		rest = discord.NewInterface(&http.Client{Timeout: 20 * time.Second}, configuration.REST.Endpoint, configuration.REST.Version, discord.UserAgent, c.logger)
	}

	rest.SetDebug(configuration.REST.Debug)

	c.session = discord.NewSession(configuration.REST.Token, rest, newState(configuration.State, c.logger), c.logger)
	c.session.ApplicationID = discord.Snowflake(configuration.REST.ApplicationID)

	return nil
}

func newState(configuration config.StateConfiguration, logger zerolog.Logger) discord.StateProvider {
	switch configuration.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     configuration.RedisAddress,
			Password: configuration.RedisPassword,
			DB:       configuration.RedisDB,
		})

		return state.NewRedis(client, configuration.RedisPrefix, logger)
	case config.BackendMemory:
		return state.NewMemory()
	default:
		return nil
	}
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	command, args := args[0], args[1:]

	switch command {
	case "snowflake":
		return c.snowflake(args)
	case "cdn":
		return c.cdn(args)
	case "webhook-delete":
		return c.webhookDelete(ctx, args)
	case "event-delete":
		return c.eventDelete(ctx, args)
	case "widget":
		return c.widget(ctx, args)
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

func parseSnowflakes(args []string, n int) ([]discord.Snowflake, error) {
	if len(args) != n {
		return nil, errUsage
	}

	ids := make([]discord.Snowflake, n)

	for i, arg := range args {
		id, err := discord.ParseSnowflake(arg)
		if err != nil {
			return nil, err
		}

		ids[i] = id
	}

	return ids, nil
}

func (c *cli) snowflake(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	for _, arg := range args {
		id, err := discord.ParseSnowflake(arg)
		if err != nil {
			return err
		}

		created := id.Time()

		fmt.Fprintf(c.stdout, "%s\t%s\t%d\n", id, created.Format(time.RFC3339Nano), created.UnixMilli())
	}

	return nil
}

func (c *cli) cdn(args []string) error {
	if len(args) != 3 {
		return errUsage
	}

	id, err := discord.ParseSnowflake(args[1])
	if err != nil {
		return err
	}

	hash := args[2]

	var cdnURL string

	switch args[0] {
	case "avatar":
		cdnURL = discord.User{ID: id, Avatar: &hash}.AvatarURL()
	case "icon":
		cdnURL = discord.Guild{ID: id, Icon: &hash}.IconURL()
	case "role-icon":
		cdnURL = discord.NewRoleIcon(id, hash, "").IconURL()
	case "event-image":
		cdnURL = discord.ScheduledEvent{ID: id, Image: &hash}.ImageURL()
	case "app-icon":
		cdnURL = discord.Application{ID: id, Icon: &hash}.IconURL()
	default:
		return fmt.Errorf("unknown cdn kind %q: %w", args[0], errUsage)
	}

	fmt.Fprintln(c.stdout, cdnURL)

	return nil
}

func (c *cli) webhookDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	webhook, ok := discord.WebhookFromURL(args[0])
	if !ok {
		id, err := discord.ParseSnowflake(args[0])
		if err != nil {
			return fmt.Errorf("%q is not a webhook url or id: %w", args[0], errUsage)
		}

		webhook = discord.Webhook{ID: id}
	}

	if webhook.Token != "" {
		// The webhook token needs no bot permissions.
		action, err := webhook.DeleteWithToken(c.session, webhook.Token)
		if err != nil {
			return err
		}

		return complete(ctx, c, action)
	}

	action, err := webhook.Delete(ctx, c.session)
	if err != nil {
		return err
	}

	return complete(ctx, c, action)
}

func (c *cli) eventDelete(ctx context.Context, args []string) error {
	ids, err := parseSnowflakes(args, 2)
	if err != nil {
		return err
	}

	event := discord.ScheduledEvent{GuildID: ids[0], ID: ids[1]}

	action, err := event.Delete(ctx, c.session)
	if err != nil {
		return err
	}

	return complete(ctx, c, action)
}

func (c *cli) widget(ctx context.Context, args []string) error {
	ids, err := parseSnowflakes(args, 1)
	if err != nil {
		return err
	}

	action, err := discord.RetrieveWidget(c.session, ids[0])
	if err != nil {
		return err
	}

	widget, err := action.Complete(ctx)
	if err != nil {
		var ok bool
		if widget, ok = discord.WidgetFromError(ids[0], err); !ok {
			return err
		}
	}

	if !widget.IsAvailable() {
		fmt.Fprintf(c.stdout, "%s\twidget disabled\n", widget.ID())

		return nil
	}

	name, _ := widget.Name()
	members, _ := widget.Members()

	fmt.Fprintf(c.stdout, "%s\t%s\t%d online\t%d listed\t%s\n", widget.ID(), name, widget.PresenceCount(), len(members), widget.InviteURL())

	return nil
}

func complete[T any](ctx context.Context, c *cli, action *discord.RestAction[T]) error {
	if c.reason != "" {
		action.Reason(c.reason)
	}

	if _, err := action.Complete(ctx); err != nil {
		return err
	}

	c.logger.Info().Str("route", action.Route().String()).Msg("Done")

	return nil
}
