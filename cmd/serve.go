package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentlab/ideaforge/internal/config"
	"github.com/agentlab/ideaforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the IdeaForge HTTP API and frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		errChan := make(chan error, 1)

		srv := server.New(cfg.Server, cfg.LLM.NewGateway(), cfg.Agents.NumIdeas)
		srv.Start(&wg, errChan)

		fmt.Printf("IdeaForge API listening on http://%s\n", cfg.Server.Addr())
		if verbose {
			fmt.Printf("Default provider: %s\n", cfg.LLM.DefaultProvider)
			fmt.Printf("Static dir: %s\n", cfg.Server.StaticDir)
		}
		fmt.Println("Press Ctrl+C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			fmt.Printf("\nReceived %v, shutting down...\n", sig)
		case err := <-errChan:
			fmt.Printf("\nError: %v\n", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Shutdown error: %v\n", err)
		}

		wg.Wait()
		fmt.Println("IdeaForge stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "port to listen on")
	serveCmd.Flags().String("host", "", "host interface to bind")
	serveCmd.Flags().String("static", "", "directory with the static frontend")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.staticDir", serveCmd.Flags().Lookup("static"))
}
