package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ha1tch/deluxepixel/internal/editor"
	"github.com/ha1tch/deluxepixel/internal/gui"
	"github.com/ha1tch/deluxepixel/internal/logger"
	"github.com/ha1tch/deluxepixel/internal/project"
)

var editCmd = &cobra.Command{
	Use:   "edit [project]",
	Short: "Open the editor window",
	Long: `Open the editor on a project. A project that does not exist yet starts
as a blank canvas sized by the config and is created on the first save
(Ctrl+S).

Keys:
  Ctrl+Z / Ctrl+Shift+Z / Ctrl+Y   undo / redo
  Ctrl+S                           save
  Ctrl+E                           export PNG to the working directory
  P B E F I L R C S M              select tool
  X                                toggle symmetry
  G / H                            toggle grid / guides
  1-9 / 0                          highlight section / clear highlight
  Space+drag, middle drag          pan
  Mouse wheel                      zoom`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.L(ctx)

	key := "untitled"
	if len(args) == 1 {
		key = args[0]
	}
	path, err := store.Path(key)
	if err != nil {
		return err
	}

	s := editor.NewFromConfig(cfg, log)
	err = s.Open(ctx, store, key)
	switch {
	case errors.Is(err, project.ErrNotFound):
		log.Info("new project", zap.String("key", key), zap.String("path", path))
	case err != nil:
		return err
	}

	if err := gui.Run(ctx, gui.Options{
		Session: s,
		Store:   store,
		Key:     key,
		Palette: cfg.PaletteColors(),
		Log:     log,
	}); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
