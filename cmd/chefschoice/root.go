package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/chefschoice/internal/update"
)

func newRootCmd() *cobra.Command {
	v := update.NewViper()
	var configPath string

	root := &cobra.Command{
		Use:           "chefschoice",
		Short:         "Browse, search and edit Chef's Choice recipes from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return update.ReadConfigFile(v, configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), v)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String("base-url", "", "recipe service base URL")
	flags.String("db", "", "credential database path")
	flags.String("log-file", "", "log file path (empty disables logging)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Duration("http-timeout", 0, "per-request timeout")
	flags.Int("http-retries", 0, "retries for failed listing and search requests")
	flags.String("view", "", "starting view (home or catalog)")
	bindFlag(v, flags.Lookup("base-url"), update.KeyBaseURL)
	bindFlag(v, flags.Lookup("db"), update.KeyDBPath)
	bindFlag(v, flags.Lookup("log-file"), update.KeyLogFile)
	bindFlag(v, flags.Lookup("log-level"), update.KeyLogLevel)
	bindFlag(v, flags.Lookup("http-timeout"), update.KeyHTTPTimeout)
	bindFlag(v, flags.Lookup("http-retries"), update.KeyHTTPRetries)
	bindFlag(v, flags.Lookup("view"), update.KeyView)

	root.AddCommand(
		newListCmd(v),
		newSearchCmd(v),
		newLoginCmd(v),
		newLogoutCmd(v),
		newStatusCmd(v),
	)
	return root
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runTUI(parent context.Context, v *viper.Viper) error {
	ctx, cancel := signalContext(parent)
	defer cancel()

	a, err := openApp(ctx, v)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	id, err := a.identity(ctx)
	if err != nil {
		return err
	}

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModelWithConfig(update.Services{
		Source:   a.client,
		Writer:   a.client,
		Identity: id,
		Log:      a.log,
		Notifier: notifier,
	}, a.cfg).WithContext(ctx)

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
