package testbed

import "github.com/Carmen-Shannon/oxy-gl/engine/ui"

// Menu is a Test listing a registry's entries as buttons. Clicking one records a selection
// that the framework applies once the frame's UI is done.
type Menu struct {
	registry *Registry
	selected *entry
}

var (
	_ Test     = &Menu{}
	_ Selector = &Menu{}
)

// NewMenu creates a menu over registry. Entries registered later show up on the next frame.
func NewMenu(registry *Registry) *Menu {
	return &Menu{registry: registry}
}

// MenuFactory returns a Factory building a menu over registry, for registering one menu
// inside another.
func MenuFactory(registry *Registry) Factory {
	return func() (Test, error) {
		return NewMenu(registry), nil
	}
}

// Registry returns the registry the menu lists.
func (m *Menu) Registry() *Registry {
	return m.registry
}

func (m *Menu) OnUpdate(float32) {}

func (m *Menu) OnRender() error {
	return nil
}

func (m *Menu) OnImGuiRender(panel ui.Panel) {
	for _, e := range m.registry.entries {
		if panel.Button(e.name) && m.selected == nil {
			m.selected = &e
		}
	}
}

func (m *Menu) TakeSelection() (string, Factory, bool) {
	if m.selected == nil {
		return "", nil, false
	}
	e := m.selected
	m.selected = nil
	return e.name, e.factory, true
}

func (m *Menu) Destroy() {
	m.selected = nil
}
