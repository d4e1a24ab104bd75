package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/deluxepixel/internal/editor"
	"github.com/ha1tch/deluxepixel/internal/logger"
	"github.com/ha1tch/deluxepixel/internal/project"
)

var (
	newWidth  int
	newHeight int
	newForce  bool
	newLayers []string
)

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a blank project",
	Long: `Create a blank project in the project directory. The canvas size
defaults to the config; extra layers are stacked above the background in
the order given.

Examples:
  deluxepixel new hero
  deluxepixel new hero --width 64 --height 64 --layer outline --layer shading`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().IntVar(&newWidth, "width", 0,
		"canvas width in cells (default from config)")
	newCmd.Flags().IntVar(&newHeight, "height", 0,
		"canvas height in cells (default from config)")
	newCmd.Flags().StringArrayVar(&newLayers, "layer", nil,
		"add a named layer above the background (repeatable)")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false,
		"overwrite an existing project")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := args[0]
	path, err := store.Path(key)
	if err != nil {
		return err
	}

	if !newForce {
		_, err := store.Load(ctx, key)
		if err == nil {
			return fmt.Errorf("project %s already exists (use --force to overwrite)", key)
		}
		if !errors.Is(err, project.ErrNotFound) {
			return err
		}
	}

	c := cfg
	if newWidth > 0 {
		c.Canvas.Width = newWidth
	}
	if newHeight > 0 {
		c.Canvas.Height = newHeight
	}
	s := editor.NewFromConfig(c, logger.L(ctx))
	for _, name := range newLayers {
		s.AddLayer(name)
	}
	if err := s.Save(ctx, store, key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%dx%d) at %s\n",
		key, s.Canvas().Width, s.Canvas().Height, path)
	return nil
}
