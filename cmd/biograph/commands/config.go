package commands

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/config"
	"github.com/astraldata/biograph/errors"
)

// ConfigCmd manages biograph configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage biograph configuration",
	Long: `Inspect and initialize configuration. Settings resolve in priority
order: environment (BIOGRAPH_*) > project biograph.toml > ~/.biograph >
/etc/biograph > built-in defaults.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "biograph.toml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		pterm.Success.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to encode configuration")
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
