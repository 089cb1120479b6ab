// Package netx tracks connectivity to the remote story API.
//
// Monitor holds the current online/offline flag; Watcher probes the API on
// an interval and publishes edge-triggered transitions on a channel. The
// services consult Monitor.Online when deciding whether a failed request
// means "offline" (queue/fall back) or a real server error; only the sync
// trigger consumes the transition channel.
package netx

import "sync"

// Transition is an edge-triggered connectivity change event.
type Transition struct {
	Online bool
}

// Monitor is the process-wide connectivity flag. Safe for concurrent use.
type Monitor struct {
	mu     sync.RWMutex
	online bool
}

// NewMonitor returns a Monitor that starts in the given state.
func NewMonitor(online bool) *Monitor {
	return &Monitor{online: online}
}

// Online reports the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Set records a new connectivity state and reports whether it changed.
func (m *Monitor) Set(online bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.online == online {
		return false
	}
	m.online = online
	return true
}

// SetOffline and SetOnline are convenience wrappers for tests and manual
// overrides (e.g. a CLI "offline" toggle).
func (m *Monitor) SetOffline() { m.Set(false) }
func (m *Monitor) SetOnline()  { m.Set(true) }
