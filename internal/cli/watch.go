package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"pet-tracker/internal/platform/httpclient"
)

func newWatchCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Print change notifications from a running API server",
		Long:  "watch subscribes to GET /changes on the API and prints one line per changed path. Stops on Ctrl-C.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/pets"
			if len(args) == 1 {
				path = args[0]
			}

			client, err := httpclient.New(server, timeout)
			if err != nil {
				return newCommandError("watch", err, 2)
			}

			err = client.Stream(cmd.Context(), "/changes?path="+url.QueryEscape(path), func(ev httpclient.Event) error {
				if ev.Name != "change" {
					return nil
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ev.Data)
				return err
			})
			if err != nil {
				return newCommandError("watch", err, 1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultHeaderTimeout, "Max wait for the stream to open")
	return cmd
}
