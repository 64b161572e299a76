// postergen renders VCK party posters from the built-in template catalogue.
//
// Usage:
//
//	postergen render -t <template> [--set key=value]... [--image key=path]... -o <file>
//	postergen list [--category <c>]
//	postergen schema -t <template>
//	postergen serve [--addr :8080]
//	postergen queue list|add|batch|due|status|remove|stats
//	postergen init [--config postergen.toml]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vck-social/postergen/internal/config"
	"github.com/vck-social/postergen/internal/logging"
	"github.com/vck-social/postergen/pkg/canvas"
	"github.com/vck-social/postergen/pkg/template"
)

const appName = "postergen"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	reg        *template.Registry
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	a.cfg = cfg
	a.reg = template.Default()
	return nil
}

func (a *app) fonts() (*canvas.FontManager, error) {
	return canvas.NewFontManager(a.cfg.Fonts.Regular, a.cfg.Fonts.Bold)
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "VCK poster generator",
		Long: `postergen fills the VCK poster templates (festival and birthday greetings,
campaign posters, event announcements, stories, achievements, condolences and
banners) with member details and photos, and renders them to PNG.

It can also serve the same editor over HTTP and keep a queue of posts
scheduled for Facebook and Instagram.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (TOML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		renderCmd(a),
		listCmd(a),
		schemaCmd(a),
		serveCmd(a),
		queueCmd(a),
		initCmd(a),
	)
	return cmd
}
