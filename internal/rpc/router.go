package rpc

import (
	"encoding/json"
	"errors"
)

// handlerFunc decodes params, calls into the manager layer, and returns the
// value to place in Response.Result. dispatch maps a returned
// *invalidParamsError (from decodeParams) onto -32602 and any other error
// onto -32000.
type handlerFunc func(d *Deps, params json.RawMessage) (interface{}, error)

// router maps "namespace.action" method names to handlers (SPEC_FULL.md §6).
var router = map[string]handlerFunc{
	"timer.start_manual":    handleTimerStartManual,
	"timer.start_pomodoro":  handleTimerStartPomodoro,
	"timer.start_countdown": handleTimerStartCountdown,
	"timer.pause":           handleTimerPause,
	"timer.resume":          handleTimerResume,
	"timer.stop":            handleTimerStop,
	"timer.cancel":          handleTimerCancel,
	"timer.get":             handleTimerGet,
	"timer.get_by_profile":  handleTimerGetByProfile,
	"timer.list":            handleTimerList,
	"timer.list_by_profile": handleTimerListByProfile,

	"profile.create": handleProfileCreate,
	"profile.get":    handleProfileGet,
	"profile.list":   handleProfileList,
	"profile.update": handleProfileUpdate,
	"profile.delete": handleProfileDelete,

	"task.create": handleTaskCreate,
	"task.get":    handleTaskGet,
	"task.list":   handleTaskList,
	"task.update": handleTaskUpdate,
	"task.delete": handleTaskDelete,
	"task.search": handleTaskSearch,
	"task.move":   handleTaskMove,

	"entry.list":               handleEntryList,
	"entry.filter":             handleEntryFilter,
	"entry.today":              handleEntryToday,
	"entry.week":               handleEntryWeek,
	"entry.month":              handleEntryMonth,
	"entry.stats_today":        handleEntryStatsToday,
	"entry.stats_week":         handleEntryStatsWeek,
	"entry.stats_month":        handleEntryStatsMonth,
	"entry.delete":             handleEntryDelete,
	"entry.update":             handleEntryUpdate,
	"entry.create":             handleEntryCreate,
	"entry.today_all_profiles": handleEntryTodayAllProfiles,
	"entry.week_all_profiles":  handleEntryWeekAllProfiles,
	"entry.month_all_profiles": handleEntryMonthAllProfiles,

	"config.get":               handleConfigGet,
	"config.set_default_profile": handleConfigSetDefaultProfile,
	"config.update_pomodoro":   handleConfigUpdatePomodoro,
	"config.update_sync":       handleConfigUpdateSync,
	"config.reset":             handleConfigReset,

	"sync.init":       handleSyncInit,
	"sync.status":     handleSyncStatus,
	"sync.sync":       handleSyncSync,
	"sync.commit":     handleSyncCommit,
	"sync.set_remote": handleSyncSetRemote,
}

// dispatch looks up and invokes the handler for method, returning a
// fully-formed Response (never an error itself — protocol-level failures
// are encoded as JSON-RPC error responses, not Go errors).
func dispatch(d *Deps, req Request) Response {
	h, ok := router[req.Method]
	if !ok {
		return newError(req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}

	result, err := h(d, req.Params)
	if err != nil {
		var paramsErr *invalidParamsError
		if errors.As(err, &paramsErr) {
			return newError(req.ID, codeInvalidParams, paramsErr.Error())
		}
		return errorResponse(req.ID, err)
	}
	return newResult(req.ID, result)
}

// decodeParams unmarshals params into dst, mapping malformed JSON onto the
// -32602 taxonomy via a sentinel error the caller recognizes.
func decodeParams(params json.RawMessage, dst interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return &invalidParamsError{err}
	}
	return nil
}

type invalidParamsError struct{ err error }

func (e *invalidParamsError) Error() string { return "invalid params: " + e.err.Error() }
func (e *invalidParamsError) Unwrap() error { return e.err }
