// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/config"
	"github.com/aidanlsb/rtend/internal/paths"
	"github.com/aidanlsb/rtend/internal/store"
	"github.com/aidanlsb/rtend/internal/ui"
)

var (
	// Global flags
	profileFlag string
	configPath  string
	debugFlag   bool

	// Resolved values
	resolvedConfigPath string
	resolvedProfile    string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rtend",
	Short: "rtend - notes about the people and things you meet",
	Long: `rtend keeps a small graph of entities in a SQLite database.

Entities are known by one or more aliases, carry free-text snippets and are
connected by relations, which can carry snippets of their own. Each profile
is a separate database file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(debugEnabled())

		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "config" || cmd.Parent().Name() == "completion") {
			resolvedConfigPath = resolveConfigPath()
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the file or run 'rtend config path' to locate it")
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		resolvedProfile = resolveProfile(cfg)
		slog.Debug("resolved profile", "profile", resolvedProfile, "config", resolvedConfigPath)
		return nil
	},
}

// Execute runs the CLI and reports a failure on stderr. The returned error
// only signals that the process should exit non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var reported *reportedError
	if errors.As(err, &reported) {
		return err
	}
	if isJSONOutput() {
		return report(ErrInternal, err, nil, "")
	}

	fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	var suggested *suggestedError
	if errors.As(err, &suggested) && suggested.suggestion != "" {
		fmt.Fprintln(os.Stderr, ui.Hint(suggested.suggestion))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Profile (database) to use")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log diagnostics to stderr")
}

func resolveConfigPath() string {
	if p := strings.TrimSpace(configPath); p != "" {
		return p
	}
	return config.DefaultPath()
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := resolveConfigPath()

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(resolvedPath)
	} else {
		loadedCfg, err = config.Load(resolvedPath)
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, resolvedPath, nil
}

// resolveProfile applies --profile > RTEND_PROFILE > default_profile.
func resolveProfile(c *config.Config) string {
	if p := strings.TrimSpace(profileFlag); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("RTEND_PROFILE")); p != "" {
		return p
	}
	return c.GetProfile()
}

// dataDir applies RTEND_DATA_DIR > data_dir. Empty means the default.
func dataDir() string {
	if d := strings.TrimSpace(os.Getenv("RTEND_DATA_DIR")); d != "" {
		return d
	}
	if cfg != nil {
		return cfg.DataDir
	}
	return ""
}

func getResolver() (*paths.Resolver, error) {
	r, err := paths.NewResolver(dataDir())
	if err != nil {
		return nil, handleError(ErrInternal, err, "Set data_dir in the config file or RTEND_DATA_DIR")
	}
	return r, nil
}

// openDatabase opens the active profile's database. Errors are already
// routed through handleError.
func openDatabase() (*store.Database, error) {
	r, err := getResolver()
	if err != nil {
		return nil, err
	}
	path, err := r.Path(resolvedProfile)
	if err != nil {
		return nil, fail(err, "")
	}
	slog.Debug("opening database", "profile", resolvedProfile, "path", path)

	db, err := store.Open(path)
	if err != nil {
		suggestion := ""
		if errors.Is(err, store.ErrDatabaseMissing) {
			suggestion = fmt.Sprintf("Run 'rtend init --profile %s' to create it", resolvedProfile)
		}
		return nil, fail(err, suggestion)
	}
	return db, nil
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}
