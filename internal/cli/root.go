// Package cli implements the curate command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/catalog"
	"github.com/mesh-intelligence/curate/internal/compose"
	"github.com/mesh-intelligence/curate/internal/logging"
	"github.com/mesh-intelligence/curate/internal/paths"
	pkgsqlite "github.com/mesh-intelligence/curate/pkg/sqlite"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	catalog   string
	jsonMode  bool
}

// app carries per-invocation state from PersistentPreRunE to subcommands.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
	catalog   *catalog.Catalog
}

// NewRootCmd creates the top-level "curate" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "curate",
		Short: "Compose St. Louis experiences from a catalog of places",
		Long: "Curate builds an ordered plan of places step by step, lets you lock,\n" +
			"reorder and regenerate steps, and saves the result as an experience.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/curate)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/curate)")
	root.PersistentFlags().StringVar(&a.flags.catalog, "catalog", "", "catalog YAML file (default: built-in St. Louis catalog)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newCategoriesCmd())
	root.AddCommand(a.newPlacesCmd())
	root.AddCommand(a.newComposeCmd())
	root.AddCommand(a.newExperiencesCmd())
	root.AddCommand(a.newFavoritesCmd())
	root.AddCommand(a.newServeCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "curate:", err)
	return exitCode(err)
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	logger, err := logging.New(cfg.GetString(cfgKeyLogLevel), cfg.GetString(cfgKeyLogFormat))
	if err != nil {
		return sysError(fmt.Errorf("build logger: %w", err))
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// loadCatalog returns the catalog named by --catalog, CURATE_CATALOG or
// config.yaml, falling back to the built-in one.
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	path, err := paths.ResolveCatalogPath(a.flags.catalog, a.config.GetString(cfgKeyCatalog), a.configDir)
	if err != nil {
		return nil, sysError(err)
	}

	var cat *catalog.Catalog
	if path == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(path)
	}
	if err != nil {
		return nil, userError(fmt.Errorf("load catalog: %w", err))
	}
	a.logger.Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("places", len(cat.Places())),
		zap.Strings("categories", cat.Categories()))
	a.catalog = cat
	return cat, nil
}

// composer returns an engine bound to the loaded catalog.
func (a *app) composer() (*compose.Composer, *catalog.Catalog, error) {
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	return compose.New(cat, compose.WithLogger(a.logger.Named("compose"))), cat, nil
}

// openStore resolves the data directory and attaches the store. The
// caller must Detach it.
func (a *app) openStore() (types.Store, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, sysError(err)
	}
	store := pkgsqlite.NewBackend(a.logger.Named("store"))
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := store.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, userError(fmt.Errorf("config %s: %w", cfgKeyBackend, err))
		}
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// withTable attaches the store, hands fn the named table and detaches.
func (a *app) withTable(name string, fn func(types.Table) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	table, err := store.GetTable(name)
	if err != nil {
		return sysError(err)
	}
	return fn(table)
}
