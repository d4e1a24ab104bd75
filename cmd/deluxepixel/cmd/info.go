package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/project"
)

var (
	outputJSON bool
)

// ProjectInfo is the structured description printed by info.
type ProjectInfo struct {
	Key             string      `json:"key"`
	Path            string      `json:"path"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	PixelSize       int         `json:"pixel_size"`
	ActiveLayer     int         `json:"active_layer"`
	ActiveSection   string      `json:"active_section,omitempty"`
	CharacterGender string      `json:"character_gender,omitempty"`
	Saved           time.Time   `json:"saved"`
	Layers          []LayerInfo `json:"layers"`
	Sections        []string    `json:"sections,omitempty"`
}

// LayerInfo describes one layer, top layer first.
type LayerInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
	Opacity int    `json:"opacity"`
	Painted int    `json:"painted_cells"`
}

var infoCmd = &cobra.Command{
	Use:   "info <project>",
	Short: "Describe a project",
	Long: `Print the canvas size, layers and character metadata of a project.

Examples:
  deluxepixel info hero
  deluxepixel info hero --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the project directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <project>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, listCmd, rmCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output as JSON (for programmatic access)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	key := args[0]
	path, err := store.Path(key)
	if err != nil {
		return err
	}
	st, err := store.Load(cmd.Context(), key)
	if err != nil {
		return err
	}
	doc, err := st.Document()
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	info := buildProjectInfo(key, path, st, doc)
	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return outputHumanFormat(cmd.OutOrStdout(), info)
}

func buildProjectInfo(key, path string, st project.State, doc *document.Document) ProjectInfo {
	info := ProjectInfo{
		Key:             key,
		Path:            path,
		Width:           doc.Canvas.Width,
		Height:          doc.Canvas.Height,
		PixelSize:       st.PixelSize,
		ActiveLayer:     doc.ActiveID,
		ActiveSection:   st.ActiveSection,
		CharacterGender: st.CharacterGender,
		Saved:           st.Timestamp,
	}
	layers := doc.Ordered()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		info.Layers = append(info.Layers, LayerInfo{
			ID:      l.ID,
			Name:    l.Name,
			Visible: l.Visible,
			Locked:  l.Locked,
			Opacity: l.Opacity,
			Painted: l.Buffer.CountOpaque(),
		})
	}
	for _, s := range st.Sections() {
		info.Sections = append(info.Sections, s.ID)
	}
	return info
}

func outputHumanFormat(w io.Writer, info ProjectInfo) error {
	fmt.Fprintf(w, "Project:  %s\n", info.Key)
	fmt.Fprintf(w, "Path:     %s\n", info.Path)
	fmt.Fprintf(w, "Canvas:   %dx%d (pixel size %d)\n", info.Width, info.Height, info.PixelSize)
	if !info.Saved.IsZero() {
		fmt.Fprintf(w, "Saved:    %s\n", info.Saved.Format(time.RFC3339))
	}
	if info.CharacterGender != "" {
		fmt.Fprintf(w, "Gender:   %s\n", info.CharacterGender)
	}
	if info.ActiveSection != "" {
		fmt.Fprintf(w, "Section:  %s\n", info.ActiveSection)
	}
	fmt.Fprintf(w, "Layers:   %d\n", len(info.Layers))
	for _, l := range info.Layers {
		flags := ""
		if !l.Visible {
			flags += " hidden"
		}
		if l.Locked {
			flags += " locked"
		}
		active := " "
		if l.ID == info.ActiveLayer {
			active = "*"
		}
		fmt.Fprintf(w, "  %s[%d] %-20s %3d%% %6d cells%s\n", active, l.ID, l.Name, l.Opacity, l.Painted, flags)
	}
	return nil
}
