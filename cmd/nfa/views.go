package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfa-dashboard/go-dashboard-client/guard"
)

type renderFunc func(ctx context.Context, a *app) error

// newViewCmd maps a CLI command onto a dashboard route. The navigation runs
// through the guard, so an unauthenticated or unauthorized view lands on the
// login or forbidden page instead of its target.
func newViewCmd(a *app, name, path string, render renderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Open the %s view", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard.Resolve(cmd.Context(), a.nav, path); err != nil {
				return err
			}

			current := a.nav.CurrentPath()
			switch {
			case strings.HasPrefix(current, guard.LoginPath):
				fmt.Println("Login required. Run: nfa login")
				return nil
			case strings.HasPrefix(current, guard.ForbiddenPath):
				fmt.Println("403 - you do not have permission to view this page")
				return nil
			}
			return render(cmd.Context(), a)
		},
	}
}

// loginRedirectTarget extracts the redirect parameter from a login path,
// or returns empty when there is none.
func loginRedirectTarget(current string) string {
	u, err := url.Parse(current)
	if err != nil || u.Path != guard.LoginPath {
		return ""
	}
	return u.Query().Get(guard.RedirectParam)
}

func renderHome(ctx context.Context, a *app) error {
	cred := a.keeper.Current()
	fmt.Printf("%s\n\n", a.cfg.GetAppName())
	if cred.User != nil {
		fmt.Printf("Signed in as %s\n", cred.User.Username)
	}
	fmt.Println("Views: traffic, schools, settlement")
	return nil
}

func renderTraffic(ctx context.Context, a *app) error {
	summary, err := a.api.Traffic.Summary(ctx, apiTrafficFilter())
	if err != nil {
		return err
	}
	fmt.Printf("%-22s %-12s %-8s %14s %14s\n", "TIME", "REGION", "CP", "RECV", "SEND")
	for _, row := range summary {
		fmt.Printf("%-22s %-12s %-8s %14d %14d\n",
			row.CreateTime.Format("2006-01-02 15:04"), row.Region, row.CP, row.TotalRecv, row.TotalSend)
	}
	return nil
}

func renderSchools(ctx context.Context, a *app) error {
	list, err := a.api.Schools.List(ctx, apiSchoolFilter())
	if err != nil {
		return err
	}
	fmt.Printf("%-14s %-32s %-12s %-8s\n", "SCHOOL ID", "NAME", "REGION", "CP")
	for _, s := range list.Items {
		fmt.Printf("%-14s %-32s %-12s %-8s\n", s.SchoolID, s.SchoolName, s.Region, s.CP)
	}
	fmt.Printf("\n%d of %d schools\n", len(list.Items), list.Total)
	return nil
}

func renderSettlement(ctx context.Context, a *app) error {
	tasks, err := a.api.Settlement.Tasks(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%-6s %-8s %-12s %-9s %10s\n", "ID", "TYPE", "DATE", "STATUS", "PROCESSED")
	for _, t := range tasks.Items {
		fmt.Printf("%-6d %-8s %-12s %-9s %10d\n", t.ID, t.TaskType, t.TaskDate, t.Status, t.ProcessedCount)
	}
	return nil
}
