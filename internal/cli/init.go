package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize curate storage",
		Long:  "Create the configuration and data directories, then initialize the experience store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadCatalog(); err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "curate initialized (config: %s)\n", a.configDir)
			return nil
		},
	}
}
