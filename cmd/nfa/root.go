package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "nfa",
		Short:         "NFA dashboard client",
		Long:          "Command-line client for the school network-traffic monitoring and settlement dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Same as a page reload: pick up any persisted session first.
			return a.session.InitFromStorage()
		},
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newViewCmd(a, "home", "/", renderHome),
		newViewCmd(a, "traffic", "/traffic", renderTraffic),
		newViewCmd(a, "schools", "/schools", renderSchools),
		newViewCmd(a, "settlement", "/settlement", renderSettlement),
	)
	return root
}
