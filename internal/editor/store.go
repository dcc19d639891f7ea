package editor

import (
	"github.com/ironsheep/image-editor/internal/imaging"
)

// Store owns the image state of one editing session: the current image, the
// original captured at load time, and the undo history.
//
// The current image is always the history entry at the history index, so the
// two can never disagree. A Store is not safe for concurrent use.
type Store struct {
	original *imaging.RasterImage
	history  *History
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{history: NewHistory(MaxHistory)}
}

// Load decodes data and makes it the current and original image, resetting
// the history to a single entry. On failure the store is unchanged.
func (s *Store) Load(data []byte) error {
	img, err := imaging.Decode(data)
	if err != nil {
		return &LoadError{Source: "bytes", Err: err}
	}
	s.reset(img)
	return nil
}

// LoadFile is Load for an image file.
func (s *Store) LoadFile(path string) error {
	img, err := imaging.LoadFile(path)
	if err != nil {
		return &LoadError{Source: "file", Err: err}
	}
	s.reset(img)
	return nil
}

// LoadString is Load for a base64 payload, optionally in a
// "data:image/<fmt>;base64," envelope.
func (s *Store) LoadString(payload string) error {
	img, err := imaging.DecodeString(payload)
	if err != nil {
		return &LoadError{Source: "base64", Err: err}
	}
	s.reset(img)
	return nil
}

func (s *Store) reset(img *imaging.RasterImage) {
	s.original = img.Clone()
	s.history.Reset(img)
	Logger().Debug("image loaded",
		"width", img.Width(), "height", img.Height(),
		"mode", img.Mode(), "format", img.Format())
}

// commit records img as the new current image.
func (s *Store) commit(img *imaging.RasterImage) {
	s.history.Push(img)
}

// Undo makes the previous snapshot current. It reports whether it moved.
func (s *Store) Undo() bool {
	moved := s.history.Undo()
	Logger().Debug("undo", "moved", moved, "index", s.history.Index(), "len", s.history.Len())
	return moved
}

// Redo makes the next snapshot current. It reports whether it moved.
func (s *Store) Redo() bool {
	moved := s.history.Redo()
	Logger().Debug("redo", "moved", moved, "index", s.history.Index(), "len", s.history.Len())
	return moved
}

// Loaded reports whether an image is loaded.
func (s *Store) Loaded() bool {
	return s.history.Current() != nil
}

// Current returns a copy of the current image, or nil.
func (s *Store) Current() *imaging.RasterImage {
	if cur := s.history.Current(); cur != nil {
		return cur.Clone()
	}
	return nil
}

// Original returns a copy of the image as it was loaded, or nil.
func (s *Store) Original() *imaging.RasterImage {
	if s.original == nil {
		return nil
	}
	return s.original.Clone()
}

// Info describes the current image. It reports false when nothing is loaded.
func (s *Store) Info() (imaging.Info, bool) {
	cur := s.history.Current()
	if cur == nil {
		return imaging.Info{}, false
	}
	return cur.Info(), true
}

// HistoryLen returns the number of stored snapshots.
func (s *Store) HistoryLen() int { return s.history.Len() }

// HistoryIndex returns the position of the current snapshot, -1 when empty.
func (s *Store) HistoryIndex() int { return s.history.Index() }
