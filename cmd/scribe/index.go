package main

import (
	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/service/indexer"
	"github.com/sandevgo/scribebot/internal/storage/snapshot"
	"github.com/sandevgo/scribebot/internal/transport/discord"
	"github.com/sandevgo/scribebot/pkg/log"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Run a single indexing pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}

		appCfg := config.NewAppConfig(ctx)
		idxCfg := config.NewIndexerConfig(ctx)
		discordCfg := config.NewDiscordConfig(ctx)

		gateway, err := discord.NewGateway(discordCfg)
		if err != nil {
			return err
		}

		store := snapshot.NewStore(appCfg.GetIndexDir())
		ix := indexer.NewIndexer(gateway, store, idxCfg)

		snap, err := ix.Run(ctx, discordCfg.GuildID)
		if err != nil {
			return err
		}

		logger.Info().
			Int("channels", len(snap.Channels)).
			Int("records", len(snap.Bugs)+len(snap.Features)+len(snap.Solutions)).
			Msg("one-shot index complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
