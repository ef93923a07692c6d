package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/paperlens/paperlens-cli/internal/dashboard"
)

var (
	srvAddr        string
	srvMaxUploadMB int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard on a local address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = srvAddr
		}
		maxUpload := cfg.MaxUploadMB
		if cmd.Flags().Changed("max-upload-mb") {
			maxUpload = srvMaxUploadMB
		}

		store := dashboard.NewStore(cfg.MaxDatasets)
		handler := dashboard.NewHandler(store, maxUpload, cfg.TopJournals)
		router := dashboard.NewRouter(handler, cfg.AllowedOrigins)

		fmt.Printf("✓ Dashboard listening on http://%s\n", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			return fmt.Errorf("serve dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (host:port)")
	serveCmd.Flags().IntVar(&srvMaxUploadMB, "max-upload-mb", 0, "max upload size in MiB")
	rootCmd.AddCommand(serveCmd)
}
