package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/config"
	"github.com/ha1tch/deluxepixel/internal/logger"
	"github.com/ha1tch/deluxepixel/internal/project"
)

var (
	// Global flags
	verbose    bool
	configPath string
	storeDir   string
)

// Loaded by the root pre-run for every subcommand.
var (
	cfg   config.Config
	store *project.DirStore
)

var rootCmd = &cobra.Command{
	Use:   "deluxepixel",
	Short: "Layered pixel-art editor for character sprites",
	Long: `A layered pixel-art editor with mirror drawing, undo history and
NFT composition guides. Projects are kept as .ddd archives in the project
directory.

Examples:
  deluxepixel edit hero                        # Open or create project "hero"
  deluxepixel new hero --width 64 --height 64  # Create a blank project
  deluxepixel export hero hero.png --scale 8   # Write an upscaled PNG
  deluxepixel info hero --json                 # Describe a project`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&storeDir, "store", "s", "",
		"project directory (overrides project_dir from the config)")
}

// setup builds the logger, loads the config and opens the project store.
func setup(cmd *cobra.Command, args []string) error {
	l, err := logger.New(verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	path := configFile()
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	l.Debug("config loaded", zap.String("path", path))

	dir := storeDir
	if dir == "" {
		dir = cfg.ProjectDir
	}
	store = project.NewDirStore(dir, l)

	cmd.SetContext(logger.NewContext(cmd.Context(), l))
	return nil
}
