// Command coach is the terminal client: log in once, then browse workouts and
// train through them exercise by exercise.
package main

import (
	"alcyxob/training-coach/internal/bootstrap"
	"alcyxob/training-coach/internal/cli"
	"alcyxob/training-coach/internal/config"
	"alcyxob/training-coach/internal/session"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("coach", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	configDir := flags.String("config", ".", "directory containing config.yaml")
	verbose := flags.BoolP("verbose", "v", false, "log wiring details to stderr")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	log.SetOutput(stderr)
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not load config: %v\n", err)
		return 2
	}
	if cfg.JWT.Secret == "" {
		// Tokens never leave this process.
		cfg.JWT.Secret = uuid.NewString()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := bootstrap.OpenRepositories(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeRepos()

	fileStorage, err := bootstrap.OpenFileStorage(ctx, cfg.S3)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	services := bootstrap.NewServices(repos, fileStorage, cfg.JWT.Secret, cfg.JWT.Expiration)

	persister, closePersister := newPersister(cfg)
	defer closePersister()
	store := session.NewStore(ctx, services.Auth, persister, cfg.Session.Key)

	app := cli.New(store, services, stdin, stdout)
	if err := app.Run(ctx, flags.Args()); err != nil {
		var redirect *cli.RedirectError
		if errors.As(err, &redirect) {
			fmt.Fprintf(stderr, "-> %s\n", redirect.Location)
			return 3
		}
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newPersister(cfg config.Config) (session.Persister, func()) {
	if cfg.Session.Backend == config.SessionBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return session.NewRedisPersister(client, "", cfg.Session.TTL), func() { _ = client.Close() }
	}
	return session.NewFilePersister(cfg.Session.Dir), func() {}
}
