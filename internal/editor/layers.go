package editor

import "go.uber.org/zap"

// Layer operations finish any open stroke, apply the change and commit one
// history entry when the document changed. Rejected operations leave the
// document untouched and set Notice.

// AddLayer adds a transparent layer on top and returns its id.
func (s *Session) AddLayer(name string) int {
	s.Cancel()
	l := s.doc.AddLayer(name)
	s.commit("add layer", zap.String("layer", l.Name))
	return l.ID
}

// DuplicateLayer copies a layer above itself and returns the copy's id, or
// -1 when id is unknown.
func (s *Session) DuplicateLayer(id int) int {
	s.Cancel()
	l := s.doc.DuplicateLayer(id)
	if l == nil {
		return -1
	}
	s.commit("duplicate layer", zap.String("layer", l.Name))
	return l.ID
}

// DeleteLayer removes a layer. The last layer cannot be deleted.
func (s *Session) DeleteLayer(id int) bool {
	s.Cancel()
	if !s.doc.DeleteLayer(id) {
		if len(s.doc.Layers) <= 1 {
			s.notice = "cannot delete the last layer"
			s.log.Warn("delete of last layer rejected", zap.Int("layer", id))
		}
		return false
	}
	s.commit("delete layer", zap.Int("layer", id))
	return true
}

// MoveLayer moves a layer to a composite position (0 = bottom).
func (s *Session) MoveLayer(id, to int) bool {
	s.Cancel()
	return s.apply("move layer", s.doc.MoveLayer(id, to), id)
}

// MergeDown merges a layer into the one below.
func (s *Session) MergeDown(id int) bool {
	s.Cancel()
	return s.apply("merge layer", s.doc.MergeDown(id), id)
}

// SetActiveLayer selects the layer receiving strokes. Selection is not an
// edit and is not recorded in history.
func (s *Session) SetActiveLayer(id int) bool {
	s.Cancel()
	return s.doc.SetActive(id)
}

func (s *Session) SetLayerVisible(id int, visible bool) bool {
	s.Cancel()
	return s.apply("visibility", s.doc.SetVisible(id, visible), id)
}

func (s *Session) SetLayerLocked(id int, locked bool) bool {
	s.Cancel()
	return s.apply("lock", s.doc.SetLocked(id, locked), id)
}

func (s *Session) SetLayerOpacity(id int, opacity int) bool {
	s.Cancel()
	return s.apply("opacity", s.doc.SetOpacity(id, opacity), id)
}

func (s *Session) RenameLayer(id int, name string) bool {
	s.Cancel()
	return s.apply("rename", s.doc.Rename(id, name), id)
}

// ClearLayer erases every cell of an unlocked layer.
func (s *Session) ClearLayer(id int) bool {
	s.Cancel()
	if l := s.doc.Layer(id); l != nil && l.Locked {
		s.notice = "layer " + l.Name + " is locked"
		return false
	}
	return s.apply("clear layer", s.doc.ClearLayer(id), id)
}

// apply commits a layer change. Callers finish the open stroke before they
// mutate the document so the stroke and the change get separate entries.
func (s *Session) apply(what string, changed bool, id int) bool {
	if changed {
		s.commit(what, zap.Int("layer", id))
	}
	return changed
}
