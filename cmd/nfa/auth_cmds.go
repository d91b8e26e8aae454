package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the dashboard backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayAppName(a.cfg.GetAppName())

			reader := bufio.NewReader(os.Stdin)
			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			if err := a.session.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", username)

			// Forward to the originally intended destination, if any.
			if redirect := loginRedirectTarget(a.nav.CurrentPath()); redirect != "" {
				return a.guard.Resolve(cmd.Context(), a.nav, redirect)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cred := a.keeper.Current()
			if !cred.IsAuthenticated() {
				fmt.Println("Not logged in")
				return nil
			}

			if err := a.session.LoadProfile(cmd.Context()); err != nil {
				return err
			}
			cred = a.keeper.Current()

			if cred.User != nil {
				fmt.Printf("User:        %s (id %d)\n", cred.User.Username, cred.User.ID)
			}
			if exp, ok := cred.AccessTokenExpiry(); ok {
				fmt.Printf("Token until: %s\n", exp.Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("Permissions: %s\n", strings.Join(cred.Permissions, ", "))
			return nil
		},
	}
}
