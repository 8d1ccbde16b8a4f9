package reminder

import (
	"context"
)

// Preferences maps program ids to the user's reminder opt-in. The in-memory
// copy held by the reminder service is the source of truth between loads; the
// persisted copy is the durability backstop.
type Preferences map[string]bool

// Clone returns an independent copy of the mapping.
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	for id, enabled := range p {
		out[id] = enabled
	}
	return out
}

// PreferenceStore persists the full preference mapping under one well-known
// key. Load returns an empty mapping when nothing was ever saved; Save
// replaces the persisted mapping atomically.
type PreferenceStore interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, prefs Preferences) error
}
