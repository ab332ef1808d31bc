package main

import "github.com/spf13/cobra"

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "timer", Short: "manage active timers"}

	var profileID, taskID string
	var targetSeconds int64

	startManual := &cobra.Command{
		Use:   "start-manual",
		Short: "start a manual (stopwatch) timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("timer.start_manual", timerStartParams(profileID, taskID))
		},
	}
	startManual.Flags().StringVar(&profileID, "profile", "", "profile id")
	startManual.Flags().StringVar(&taskID, "task", "", "optional task id")
	startManual.MarkFlagRequired("profile")

	startPomodoro := &cobra.Command{
		Use:   "start-pomodoro",
		Short: "start a pomodoro timer using the configured defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("timer.start_pomodoro", timerStartParams(profileID, taskID))
		},
	}
	startPomodoro.Flags().StringVar(&profileID, "profile", "", "profile id")
	startPomodoro.Flags().StringVar(&taskID, "task", "", "optional task id")
	startPomodoro.MarkFlagRequired("profile")

	startCountdown := &cobra.Command{
		Use:   "start-countdown",
		Short: "start a countdown timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := timerStartParams(profileID, taskID)
			p["target_seconds"] = targetSeconds
			return invoke("timer.start_countdown", p)
		},
	}
	startCountdown.Flags().StringVar(&profileID, "profile", "", "profile id")
	startCountdown.Flags().StringVar(&taskID, "task", "", "optional task id")
	startCountdown.Flags().Int64Var(&targetSeconds, "seconds", 0, "countdown length in seconds")
	startCountdown.MarkFlagRequired("profile")
	startCountdown.MarkFlagRequired("seconds")

	cmd.AddCommand(
		startManual,
		startPomodoro,
		startCountdown,
		timerProfileAction("pause", "pause the active timer for a profile", "timer.pause"),
		timerProfileAction("resume", "resume a paused timer", "timer.resume"),
		timerProfileAction("stop", "stop the active timer and persist an entry", "timer.stop"),
		timerProfileAction("cancel", "cancel the active timer without persisting an entry", "timer.cancel"),
		timerProfileAction("status", "show the active timer for a profile", "timer.get_by_profile"),
		&cobra.Command{
			Use:   "list",
			Short: "list every active timer",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("timer.list", nil)
			},
		},
	)
	return cmd
}

func timerStartParams(profileID, taskID string) map[string]interface{} {
	p := map[string]interface{}{"profile_id": profileID}
	if taskID != "" {
		p["task_id"] = taskID
	}
	return p
}

func timerProfileAction(use, short, method string) *cobra.Command {
	var profileID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(method, map[string]string{"profile_id": profileID})
		},
	}
	cmd.Flags().StringVar(&profileID, "profile", "", "profile id")
	cmd.MarkFlagRequired("profile")
	return cmd
}
