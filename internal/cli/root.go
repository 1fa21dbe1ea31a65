package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pet-tracker/internal/adapters/storage"
	"pet-tracker/internal/config"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/notify"
	"pet-tracker/internal/platform/logger"
)

type rootFlags struct {
	dbPath  string
	verbose bool
}

// NewRootCmd constructs the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "petsctl",
		Short: "petsctl - manage the shelter pets table",
		Long:  "petsctl runs queries, inserts, updates and deletes against the pets store configured by DB_DRIVER/DB_PATH/DB_DSN.",
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite file to use (overrides DB_DRIVER/DB_PATH)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newGetCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newUpdateCmd(flags))
	cmd.AddCommand(newDeleteCmd(flags))
	cmd.AddCommand(newTypeCmd(flags))
	cmd.AddCommand(newWatchCmd())
	return cmd
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode := 1
		var cerr CommandError
		if errors.As(err, &cerr) {
			exitCode = cerr.ExitStatus()
		}
		stop()
		os.Exit(exitCode)
	}
}

// withService abre el store, corre fn y lo cierra.
func withService(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, svc *pets.Service) error) error {
	cfg, err := config.Load()
	if err != nil {
		return newCommandError("invalid configuration", err, 2)
	}
	if flags.dbPath != "" {
		cfg.DBDriver = config.DriverSQLite
		cfg.DBPath = flags.dbPath
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flags.verbose {
		level = logger.Debug
	} else if level < logger.Warn {
		// la salida de los comandos va a stdout; en stderr solo problemas
		level = logger.Warn
	}
	log := logger.New(logger.Options{
		Level:  level,
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "petsctl",
		Output: cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closer, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return newCommandError("open store", err, 1)
	}
	defer closer.Close()

	svc := pets.NewService(store, pets.NewMatcher(cfg.Authority), notify.NewHub(), log)
	return fn(ctx, svc)
}

// refArg acepta un id numérico, un path (/pets/3) o una URI content://.
func refArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg != "" && strings.Trim(arg, "0123456789") == "" {
		return "/" + pets.PathPets + "/" + arg
	}
	return arg
}

// domainError traduce errores del gateway a exit codes.
func domainError(op string, err error) error {
	switch {
	case errors.Is(err, pets.ErrInvalidArgument), errors.Is(err, pets.ErrUnsupportedReference):
		return newCommandError(op, err, 2)
	default:
		return newCommandError(op, err, 1)
	}
}
