// Command mootimerctl is a thin JSON-RPC client for mootimerd: each
// invocation dials the daemon's Unix socket, sends one request, prints the
// result, and exits.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mootimer/daemon/internal/domain"
)

var socketPath string

var rootCmd = &cobra.Command{
	Use:           "mootimerctl",
	Short:         "control the mootimer daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultSocket := domain.DefaultDaemonConfig().SocketPath
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", defaultSocket, "path to the daemon's Unix socket")

	rootCmd.AddCommand(
		newTimerCmd(),
		newProfileCmd(),
		newTaskCmd(),
		newEntryCmd(),
		newConfigCmd(),
		newSyncCmd(),
		newWatchCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mootimerctl: %v\n", err)
		os.Exit(1)
	}
}

// invoke calls method with params, prints the pretty-printed result, and
// returns an error cobra will report (matching the teacher's RunE style).
func invoke(method string, params interface{}) error {
	result, err := call(context.Background(), socketPath, method, params)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		fmt.Println("ok")
		return nil
	}
	var pretty interface{}
	if err := json.Unmarshal(result, &pretty); err != nil {
		fmt.Println(string(result))
		return nil
	}
	b, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(b))
	return nil
}
