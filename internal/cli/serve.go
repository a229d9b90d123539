package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/grovert/maintassist/internal/config"
	"github.com/grovert/maintassist/internal/db"
	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/llm"
	"github.com/grovert/maintassist/internal/repository"
	"github.com/grovert/maintassist/internal/server"
	"github.com/grovert/maintassist/internal/service"
	"github.com/grovert/maintassist/internal/zabbix"
)

type serveOptions struct {
	listen string
}

func (o *serveOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.listen, "listen", "", "listen address (overrides configuration)")
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.ListenAddr = opts.listen
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	printBanner(os.Stdout, bannerInfo{
		Listen:    cfg.ListenAddr,
		Provider:  string(cfg.LLM.Provider),
		ZabbixURL: cfg.Zabbix.URL,
	})

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	audit := repository.NewAuditRepository(database)

	zbx := zabbix.NewClient(cfg.Zabbix.URL, cfg.Zabbix.Token, log)

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewZapObserver(log)
	}
	client, err := llm.NewClient(cfg.LLM, observer)
	if err != nil {
		return err
	}

	chat := intelligence.NewChatService(client)
	maint := service.NewMaintenanceService(zbx, audit, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(chat, maint, zbx, server.Info{
		Version:  version,
		Provider: string(cfg.LLM.Provider),
	}, log)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

// newLogger picks a console encoder on interactive terminals and JSON
// otherwise.
func newLogger() (*zap.Logger, error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
