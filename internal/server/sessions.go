package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-editor/internal/dispatch"
	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// ErrUnknownSession is returned for a handle that was never opened or has
// already been closed.
var ErrUnknownSession = errors.New("unknown session")

// session is one open image with its own history. Commands on a session run
// one at a time.
type session struct {
	mu   sync.Mutex
	proc *editor.Processor
	disp *dispatch.Dispatcher
}

// execute runs req with the session lock held.
func (s *session) execute(req dispatch.Request) dispatch.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disp.Execute(req)
}

// Sessions is the registry of open editing sessions keyed by UUID handle.
//
// Sessions is safe for concurrent use. Sessions stay open until Close is
// called or the server exits.
type Sessions struct {
	mu    sync.RWMutex
	items map[string]*session
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{
		items: make(map[string]*session),
	}
}

// Open loads input (a file path or a base64 payload) into a fresh session and
// returns its handle. Nothing is registered if the load fails.
func (s *Sessions) Open(input string) (string, imaging.Info, error) {
	proc := editor.NewProcessor()
	if err := dispatch.LoadInput(proc, input); err != nil {
		return "", imaging.Info{}, err
	}
	info, _ := proc.Info()

	id := uuid.NewString()
	s.mu.Lock()
	s.items[id] = &session{proc: proc, disp: dispatch.New(proc)}
	s.mu.Unlock()

	editor.Logger().Debug("session opened", "session", id, "width", info.Width, "height", info.Height)
	return id, info, nil
}

// get returns the session for id.
func (s *Sessions) get(id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(ErrUnknownSession, "%q", id)
	}
	s.mu.RLock()
	sess, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSession, "%s", id)
	}
	return sess, nil
}

// Execute runs req against the session id.
func (s *Sessions) Execute(id string, req dispatch.Request) (dispatch.Result, error) {
	sess, err := s.get(id)
	if err != nil {
		return dispatch.Result{}, err
	}
	return sess.execute(req), nil
}

// Close drops the session id. It reports whether the session existed.
func (s *Sessions) Close(id string) bool {
	s.mu.Lock()
	_, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if ok {
		editor.Logger().Debug("session closed", "session", id)
	}
	return ok
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
