package rpc

import (
	"github.com/mootimer/daemon/internal/config"
	"github.com/mootimer/daemon/internal/entry"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/profile"
	"github.com/mootimer/daemon/internal/sync"
	"github.com/mootimer/daemon/internal/task"
	"github.com/mootimer/daemon/internal/timer"
)

// Deps bundles every manager the router dispatches into. The daemon
// entrypoint constructs one instance and hands it to both the RPC server
// and the MCP adapter, so the two surfaces never drift apart.
type Deps struct {
	Bus      *eventbus.Bus
	Timers   *timer.Manager
	Profiles *profile.Manager
	Tasks    *task.Manager
	Entries  *entry.Manager
	Config   *config.Manager
	Syncer   *sync.Syncer
}
