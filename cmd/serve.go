package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mhartley/compass/internal/audit"
	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/scoring"
	"github.com/mhartley/compass/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		rubric, err := resolveRubric(cmd)
		if err != nil {
			return err
		}
		j, err := resolveJudge(cmd, log)
		if err != nil {
			return err
		}

		dbPath, err := audit.DefaultDBPath()
		if err != nil {
			return err
		}
		auditStore, err := audit.Open(dbPath)
		if err != nil {
			return err
		}
		defer auditStore.Close()

		engine, err := newEngine(cmd, facade.Options{
			Scorer: scoring.NewEngine(j, scoring.DefaultConfig(), log),
			Rubric: rubric,
			Audit:  auditStore,
			Log:    log,
		}, false)
		if err != nil {
			return err
		}

		cfg := server.DefaultConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.New(engine, cfg, log).Run(ctx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().String("judge", "heuristic", "Reflection judge: heuristic or model")
	serveCmd.Flags().String("rubric", "", "Path to a YAML rubric override")
}
