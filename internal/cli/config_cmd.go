package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rtend/internal/config"
	"github.com/aidanlsb/rtend/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Locate or create the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, statErr := os.Stat(resolvedConfigPath)
		exists := statErr == nil
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": resolvedConfigPath, "exists": exists}, nil)
			return nil
		}
		fmt.Println(resolvedConfigPath)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Writes a config file with every setting commented out. An existing
file is left alone.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": resolvedConfigPath, "created": created}, nil)
			return nil
		}
		if !created {
			fmt.Println(ui.Infof("Config already exists at %s", resolvedConfigPath))
			return nil
		}
		fmt.Println(ui.Successf("Created config at %s", resolvedConfigPath))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
