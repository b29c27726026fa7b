package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	handler    func(string)
	registered int
	removed    int
	failAttach bool
}

func (s *fakeSurface) AddPointerListener(handler func(elementID string)) (func(), error) {
	if s.failAttach {
		return nil, errors.New("surface closed")
	}

	s.registered++
	s.handler = handler

	return func() {
		s.removed++
		s.handler = nil
	}, nil
}

func (s *fakeSurface) click(elementID string) {
	if s.handler != nil {
		s.handler(elementID)
	}
}

type recorder struct {
	states []SelectionState
}

func (r *recorder) listen(state SelectionState) {
	r.states = append(r.states, state)
}

func TestSelectionNotifiesOncePerChange(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)

	surface.click("button-1")
	surface.click("input-1")

	// selecting a new element deselects the old one implicitly; the
	// subscriber sees one notification per click, not two
	require.Len(t, rec.states, 2)

	require.NotNil(t, rec.states[1].SelectedID)
	assert.Equal(t, "input-1", *rec.states[1].SelectedID)

	current := m.Current()
	require.NotNil(t, current.SelectedID)
	assert.Equal(t, "input-1", *current.SelectedID)
}

func TestSelectionSameElementNoNotification(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)

	surface.click("button-1")
	surface.click("button-1")

	assert.Len(t, rec.states, 1)
}

func TestSelectionClickOutsideClears(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)

	surface.click("button-1")
	surface.click("")

	require.Len(t, rec.states, 2)
	assert.Nil(t, rec.states[1].SelectedID)

	// clicking outside with nothing selected changes nothing
	surface.click("")
	assert.Len(t, rec.states, 2)
}

func TestSubscribeSameIDLastWriteWins(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	first := &recorder{}
	second := &recorder{}

	require.NoError(t, m.AttachTo(surface))

	// re-subscribing under the same id replaces the callback
	m.Subscribe("ui", first.listen)
	m.Subscribe("ui", second.listen)

	surface.click("button-1")

	assert.Empty(t, first.states)
	assert.Len(t, second.states, 1)
}

func TestSubscribeDistinctIDsAllNotified(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	inspector := &recorder{}
	sidebar := &recorder{}

	require.NoError(t, m.AttachTo(surface))

	m.Subscribe("inspector", inspector.listen)
	m.Subscribe("sidebar", sidebar.listen)

	surface.click("button-1")

	assert.Len(t, inspector.states, 1)
	assert.Len(t, sidebar.states, 1)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)
	m.Unsubscribe("ui")

	surface.click("button-1")

	assert.Empty(t, rec.states)

	// unsubscribing an unknown id is a no-op
	m.Unsubscribe("nope")
}

func TestDetachResetsAndNotifiesOnce(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)

	surface.click("button-1")
	m.Detach()

	require.Len(t, rec.states, 2)
	assert.Nil(t, rec.states[1].SelectedID)

	assert.Equal(t, 1, surface.removed)
	assert.Nil(t, m.Current().SelectedID)

	// clicks after detach reach nobody
	surface.click("button-2")
	assert.Len(t, rec.states, 2)
}

func TestDetachWithoutSelectionIsSilent(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(surface))
	m.Subscribe("ui", rec.listen)

	m.Detach()

	assert.Empty(t, rec.states)

	// detaching an unattached manager is a no-op
	m.Detach()
	assert.Equal(t, 1, surface.removed)
}

func TestAttachIdempotent(t *testing.T) {
	m := NewManager()
	surface := &fakeSurface{}

	require.NoError(t, m.AttachTo(surface))
	require.NoError(t, m.AttachTo(surface))

	assert.Equal(t, 1, surface.registered)
}

func TestAttachReplacesSurface(t *testing.T) {
	m := NewManager()
	old := &fakeSurface{}
	next := &fakeSurface{}
	rec := &recorder{}

	require.NoError(t, m.AttachTo(old))
	m.Subscribe("ui", rec.listen)

	old.click("button-1")

	require.NoError(t, m.AttachTo(next))

	// the old surface is released and the selection reset
	assert.Equal(t, 1, old.removed)
	assert.Nil(t, m.Current().SelectedID)

	next.click("input-1")

	last := rec.states[len(rec.states)-1]
	require.NotNil(t, last.SelectedID)
	assert.Equal(t, "input-1", *last.SelectedID)
}

func TestAttachErrors(t *testing.T) {
	m := NewManager()

	assert.Error(t, m.AttachTo(nil))

	require.NoError(t, m.AttachTo(&fakeSurface{}))
	assert.Error(t, m.AttachTo(&fakeSurface{failAttach: true}))
}
