package domain

import "github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"

// Streak is the persisted streak state.
type Streak = aggregate.Streak
