package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/config"
	"github.com/xavierca1/alboomx-bot/internal/infra/sheets"
	"github.com/xavierca1/alboomx-bot/internal/logger"
	"github.com/xavierca1/alboomx-bot/internal/usecase"
)

func newReplayCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Append journaled sheet failures to the spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, journal, err := openJournal(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			sheet, err := sheets.NewFromServiceAccount(ctx, cfg.SpreadsheetID, cfg.ServiceAccountJSON)
			if err != nil {
				return err
			}

			out, err := usecase.NewReplaySyncFailuresUseCase(sheet, journal, cfg.Now, log).Execute(ctx, limit)
			if err != nil {
				return err
			}

			log.Info("replay finished",
				zap.Int("pending", out.Pending), zap.Int("replayed", out.Replayed), zap.Int("failed", out.Failed))
			fmt.Fprintf(cmd.OutOrStdout(), "pending=%d replayed=%d failed=%d\n", out.Pending, out.Replayed, out.Failed)

			if out.Failed > 0 {
				return fmt.Errorf("%d of %d records could not be replayed", out.Failed, out.Pending)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum journaled records to replay")
	return cmd
}
