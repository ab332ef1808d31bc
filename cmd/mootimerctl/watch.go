package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"
)

// getTerminalWidth returns the current terminal width, defaulting to 80
// when stdout isn't a terminal or the report comes back implausibly
// narrow.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

func newWatchCmd() *cobra.Command {
	var profileID string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "follow a profile's timer live, rendering big-digit countdown/elapsed time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(socketPath, profileID)
		},
	}
	cmd.Flags().StringVar(&profileID, "profile", "", "profile id")
	cmd.MarkFlagRequired("profile")
	return cmd
}

// watchTimerEvent mirrors eventbus.TimerEvent's wire shape; kept local so
// this package doesn't need to import the daemon's internal packages.
type watchTimerEvent struct {
	Type             string `json:"type"`
	ProfileID        string `json:"profile_id"`
	TimerID          string `json:"timer_id"`
	ElapsedSeconds   *int64 `json:"elapsed_seconds,omitempty"`
	RemainingSeconds *int64 `json:"remaining_seconds,omitempty"`
	DurationSeconds  *int64 `json:"duration_seconds,omitempty"`
	Phase            string `json:"phase,omitempty"`
}

type watchNotification struct {
	Method string          `json:"method"`
	Params watchTimerEvent `json:"params"`
}

type watchMsg watchTimerEvent
type watchErrMsg error

// runWatch opens a persistent connection to the daemon, distinct from the
// one-shot call() used by every other subcommand, and drives a bubbletea
// program off the stream of timer.event notifications it receives.
func runWatch(socketPath, profileID string) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", socketPath, err)
	}

	req := rpcRequest{JSONRPC: "2.0", ID: 1, Method: "timer.get_by_profile", Params: map[string]string{"profile_id": profileID}}
	b, err := json.Marshal(req)
	if err != nil {
		conn.Close()
		return fmt.Errorf("encoding request: %w", err)
	}
	if _, err := conn.Write(append(b, '\n')); err != nil {
		conn.Close()
		return fmt.Errorf("writing request: %w", err)
	}

	events := make(chan watchTimerEvent, 16)
	errs := make(chan error, 1)
	reader := bufio.NewReader(conn)
	go readWatchEvents(reader, profileID, events, errs)

	m := newWatchModel(profileID, events, errs)
	defer conn.Close()
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

// readWatchEvents scans response/notification lines, skipping the initial
// request's own response (it has a numeric id), and forwards timer.event
// notifications for the watched profile onto events.
func readWatchEvents(r *bufio.Reader, profileID string, events chan<- watchTimerEvent, errs chan<- error) {
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			errs <- err
			return
		}
		var n watchNotification
		if err := json.Unmarshal(line, &n); err != nil {
			continue
		}
		if n.Method != "timer.event" {
			continue
		}
		if n.Params.ProfileID != profileID {
			continue
		}
		events <- n.Params
	}
}

type watchModel struct {
	profileID string
	events    chan watchTimerEvent
	errs      chan error
	last      watchTimerEvent
	have      bool
	err       error
	quitting  bool
	width     int
	bar       progress.Model
}

func newWatchModel(profileID string, events chan watchTimerEvent, errs chan error) watchModel {
	w := getTerminalWidth()
	bar := progress.New(progress.WithGradient("#2ECC71", "#27AE60"))
	bar.Width = w - 16
	return watchModel{profileID: profileID, events: events, errs: errs, width: w, bar: bar}
}

func (m watchModel) Init() tea.Cmd {
	return waitForWatchEvent(m.events, m.errs)
}

func waitForWatchEvent(events chan watchTimerEvent, errs chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-events:
			return watchMsg(e)
		case err := <-errs:
			return watchErrMsg(err)
		}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case watchMsg:
		e := watchTimerEvent(msg)
		m.last = e
		m.have = true
		notifyPhaseChange(e)
		return m, waitForWatchEvent(m.events, m.errs)
	case watchErrMsg:
		m.err = msg
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("watch: connection closed (%v)\n", m.err)
	}
	if m.quitting {
		return ""
	}
	if !m.have {
		return fmt.Sprintf("waiting for timer events on profile %q (q to quit)...\n", m.profileID)
	}

	color := lipgloss.Color("2")
	label := "elapsed"
	seconds := int64(0)
	if m.last.RemainingSeconds != nil {
		label = "remaining"
		seconds = *m.last.RemainingSeconds
		color = lipgloss.Color("3")
	} else if m.last.ElapsedSeconds != nil {
		seconds = *m.last.ElapsedSeconds
	}

	phase := m.last.Phase
	if phase == "" {
		phase = "manual"
	}

	big := renderBigTime(formatHMS(seconds), color, m.width)
	out := fmt.Sprintf("%s  [%s / %s]\n\n%s\n", m.last.Type, phase, label, big)

	if m.last.DurationSeconds != nil && *m.last.DurationSeconds > 0 {
		var fraction float64
		if m.last.RemainingSeconds != nil {
			fraction = 1 - float64(seconds)/float64(*m.last.DurationSeconds)
		} else {
			fraction = float64(seconds) / float64(*m.last.DurationSeconds)
		}
		out += "\n" + m.bar.ViewAs(clampFraction(fraction)) + "\n"
	}

	return out + "\n(q to quit)\n"
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func formatHMS(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	d := time.Duration(totalSeconds) * time.Second
	h := int64(d.Hours())
	mi := int64(d.Minutes()) % 60
	s := int64(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
	}
	return fmt.Sprintf("%02d:%02d", mi, s)
}

// notifyPhaseChange fires a desktop notification client-side on the events
// a person actually wants to be interrupted for. The daemon itself stays
// headless and never emits these.
func notifyPhaseChange(e watchTimerEvent) {
	switch e.Type {
	case "phase_changed":
		beeep.Notify("mootimer", fmt.Sprintf("phase changed to %s", e.Phase), "")
	case "countdown_completed":
		beeep.Notify("mootimer", "countdown complete", "")
	case "stopped":
		beeep.Notify("mootimer", "timer stopped", "")
	}
}
