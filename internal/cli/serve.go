package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/httpapi"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, composer and saved experiences over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.GetString(cfgKeyListenAddr)
			}
			composer, cat, err := a.composer()
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			h := httpapi.NewHandlers(cat, composer, store,
				httpapi.WithLogger(a.logger.Named("http")),
				httpapi.WithDefaultTime(a.config.GetString(cfgKeyDefaultTime)))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = httpapi.Serve(ctx, addr, httpapi.NewRouter(h), a.logger, func(bound net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", bound)
			})
			if err != nil {
				a.logger.Error("serve failed", zap.Error(err))
				return sysError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr from config.yaml)")
	return cmd
}
