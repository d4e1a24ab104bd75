// Package export flattens a document into its final image and project
// record.
package export

import (
	"fmt"
	"image"
	"time"

	"github.com/ha1tch/deluxepixel/internal/document"
	"github.com/ha1tch/deluxepixel/internal/guides"
	"github.com/ha1tch/deluxepixel/internal/project"
)

// Meta carries the session fields stored alongside the layers.
type Meta struct {
	PixelSize       int
	ActiveSection   string
	Sections        []guides.Section
	CharacterGender string
	Now             func() time.Time // defaults to time.Now
}

// Result is the exported artifact.
type Result struct {
	Image *image.NRGBA // composite at the canvas's native resolution
	State project.State
}

// Export composites d once and encodes its project record. Overlays are
// never part of the image.
func Export(d *document.Document, m Meta) (Result, error) {
	img := document.Composite(d).ToNRGBA()
	st, err := project.FromDocument(d)
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	st.PixelSize = m.PixelSize
	st.ActiveSection = m.ActiveSection
	st.SectionMeta = project.SectionsFrom(m.Sections)
	st.CharacterGender = m.CharacterGender
	st.Timestamp = now().UTC()
	return Result{Image: img, State: st}, nil
}
