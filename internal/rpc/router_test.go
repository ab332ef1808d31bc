package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/config"
	"github.com/mootimer/daemon/internal/entry"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/profile"
	"github.com/mootimer/daemon/internal/storage"
	"github.com/mootimer/daemon/internal/sync"
	"github.com/mootimer/daemon/internal/task"
	"github.com/mootimer/daemon/internal/timer"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	dataDir := t.TempDir()
	configDir := t.TempDir()
	bus := eventbus.New()

	profileStore := storage.NewProfileStorage(dataDir)
	profiles, err := profile.NewManager(profileStore, bus)
	require.NoError(t, err)

	taskStore := storage.NewTaskStorage(dataDir)
	tasks := task.NewManager(taskStore, bus)

	entryStore := storage.NewEntryStorage(dataDir)
	entries := entry.NewManager(entryStore, bus)

	cfgStore := storage.NewConfigStorage(configDir)
	cfg, err := config.NewManager(cfgStore)
	require.NoError(t, err)

	timers := timer.NewManager(bus)
	timers.SetTaskTitleResolver(tasks)

	return &Deps{
		Bus:      bus,
		Timers:   timers,
		Profiles: profiles,
		Tasks:    tasks,
		Entries:  entries,
		Config:   cfg,
		Syncer:   sync.NewSyncer(dataDir),
	}
}

func rawID(id int) json.RawMessage { b, _ := json.Marshal(id); return b }

func TestDispatchUnknownMethod(t *testing.T) {
	deps := newTestDeps(t)
	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "bogus.method"})
	require.NotNil(t, resp.Error)
	require.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestDispatchInvalidParams(t *testing.T) {
	deps := newTestDeps(t)
	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "profile.create", Params: json.RawMessage(`{"id": 5}`)})
	require.NotNil(t, resp.Error)
	require.Equal(t, codeInvalidParams, resp.Error.Code)
}

func TestDispatchProfileCreateAndGet(t *testing.T) {
	deps := newTestDeps(t)

	create := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "profile.create", Params: json.RawMessage(`{"id":"work","name":"Work"}`)})
	require.Nil(t, create.Error)

	get := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "profile.get", Params: json.RawMessage(`{"id":"work"}`)})
	require.Nil(t, get.Error)
}

func TestDispatchProfileCreateDuplicateMapsToDomainError(t *testing.T) {
	deps := newTestDeps(t)
	dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "profile.create", Params: json.RawMessage(`{"id":"work","name":"Work"}`)})

	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "profile.create", Params: json.RawMessage(`{"id":"work","name":"Work"}`)})
	require.NotNil(t, resp.Error)
	require.Equal(t, codeDomainError, resp.Error.Code)
}

func TestDispatchTimerStartStopPersistsEntry(t *testing.T) {
	deps := newTestDeps(t)
	dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "profile.create", Params: json.RawMessage(`{"id":"work","name":"Work"}`)})

	start := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "timer.start_manual", Params: json.RawMessage(`{"profile_id":"work"}`)})
	require.Nil(t, start.Error)

	stop := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(3), Method: "timer.stop", Params: json.RawMessage(`{"profile_id":"work"}`)})
	require.Nil(t, stop.Error)

	list, err := deps.Entries.List("work")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDispatchTaskSearchRoundTrips(t *testing.T) {
	deps := newTestDeps(t)
	dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "task.create", Params: json.RawMessage(`{"profile_id":"work","title":"Write report"}`)})

	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "task.search", Params: json.RawMessage(`{"profile_id":"work","query":"report"}`)})
	require.Nil(t, resp.Error)
}

func TestDispatchEntryTodayAllProfilesDefaultsToKnownProfiles(t *testing.T) {
	deps := newTestDeps(t)
	dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "profile.create", Params: json.RawMessage(`{"id":"work","name":"Work"}`)})

	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(2), Method: "entry.today_all_profiles", Params: json.RawMessage(`{}`)})
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
}

func TestDispatchSyncStatusOnUninitializedRepo(t *testing.T) {
	deps := newTestDeps(t)
	resp := dispatch(deps, Request{JSONRPC: "2.0", ID: rawID(1), Method: "sync.status"})
	require.Nil(t, resp.Error)
}
