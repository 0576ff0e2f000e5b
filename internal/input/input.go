package input

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionRegenerate
	ActionToggleWireframe
	ActionPauseOrbit
	ActionSaveAtlas
	ActionCount // Sentinel value for array sizing
)

// Key is a physical key code as reported by the window system.
type Key int

// Manager maps physical keys to logical actions and tracks their state.
// Key events arrive on the window thread; it is not safe for concurrent use.
type Manager struct {
	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[Key][]Action

	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with no bindings.
func NewManager() *Manager {
	return &Manager{keyToActions: make(map[Key][]Action)}
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (m *Manager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key Key) {
	delete(m.keyToActions, key)
}

// HandleKey records a key press or release. Repeats count as held.
func (m *Manager) HandleKey(key Key, pressed bool) {
	for _, act := range m.keyToActions[key] {
		if pressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = pressed
	}
}

// PostUpdate must be called at the end of each frame to reset edge detection.
func (m *Manager) PostUpdate() {
	for i := range ActionCount {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.justReleased[action]
}
