/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edutrack/apiserver/config"
	"github.com/edutrack/apiserver/internal/mq"
	"github.com/edutrack/apiserver/internal/notify"
	"github.com/edutrack/apiserver/internal/server"
)

// workerCmd represents the worker command. It runs the notification worker
// that consumes email jobs from the broker and delivers them over SMTP.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Starts the notification delivery worker",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		log := server.NewLogger()

		backend, err := server.NewQueueBackend(cmd.Context(), cfg.MQ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect broker: %v\n", err)
			os.Exit(1)
		}
		queue := mq.New(backend)
		defer queue.Close()

		sender := notify.NewSMTPSender(cfg.SMTP)
		worker := notify.NewWorker(queue, sender, cfg.SMTP.ResetURL, log)

		log.Info("notification worker started")
		if err := worker.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "worker error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
