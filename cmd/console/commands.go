package main

import (
	"context"
	"fmt"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/session"
)

// approvalWait bounds how long the console waits for an out-of-band login
// approval before giving up and leaving the request pending server-side.
const approvalWait = 2 * time.Minute

func dispatch(ctx context.Context, manager *session.Manager, apiClient *api.Client, args []string) error {
	switch args[0] {
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: console login <email>")
		}
		return loginCommand(ctx, manager, args[1])
	case "logout":
		manager.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "status":
		return statusCommand(manager)
	case "whoami":
		return whoamiCommand(manager)
	case "tasks":
		return tasksCommand(ctx, manager, apiClient)
	case "records":
		return recordsCommand(ctx, manager, apiClient)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func loginCommand(ctx context.Context, manager *session.Manager, email string) error {
	fmt.Printf("Password for %s: ", email)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if err := manager.Login(ctx, email, string(password)); err != nil {
		return err
	}

	if manager.State().IsTwoFactorPending() {
		fmt.Println("Approve the login on your registered device...")
		if !waitForApproval(manager) {
			return fmt.Errorf("timed out waiting for approval")
		}
	}

	state := manager.State()
	if !state.IsLoggedIn() {
		return fmt.Errorf("login did not complete")
	}
	fmt.Printf("Logged in as %s (%s)\n", state.User.FullName(), state.User.Role)
	return nil
}

// waitForApproval watches session state until the two-factor request
// resolves or the wait budget runs out.
func waitForApproval(manager *session.Manager) bool {
	deadline := time.Now().Add(approvalWait)
	for time.Now().Before(deadline) {
		if !manager.State().IsTwoFactorPending() {
			return true
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}

func statusCommand(manager *session.Manager) error {
	state := manager.State()
	fmt.Printf("Session: %s\n", state.Kind)
	if state.User != nil {
		fmt.Printf("User: %s <%s>\n", state.User.FullName(), state.User.Email)
	}
	return nil
}

func whoamiCommand(manager *session.Manager) error {
	user := manager.CurrentUser()
	if user == nil {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("%s <%s>\nRole: %s (%s)\n", user.FullName(), user.Email, user.Role, user.RoleName)
	return nil
}

func tasksCommand(ctx context.Context, manager *session.Manager, apiClient *api.Client) error {
	if !manager.State().IsLoggedIn() {
		return fmt.Errorf("not logged in")
	}

	page, err := apiClient.AssignedTasks(ctx, api.ListOptions{PageSize: 50})
	if err != nil {
		return err
	}

	if len(page.Items) == 0 {
		fmt.Println("No assigned tasks.")
		return nil
	}
	for _, task := range page.Items {
		due := ""
		if !task.DueDate.IsZero() {
			due = " due " + task.DueDate.Format("2006-01-02")
		}
		fmt.Printf("%6d  %-10s %s%s\n", task.ID, task.Status, task.Title, due)
	}
	fmt.Printf("%d of %d tasks\n", len(page.Items), page.TotalCount)
	return nil
}

func recordsCommand(ctx context.Context, manager *session.Manager, apiClient *api.Client) error {
	state := manager.State()
	if !state.IsLoggedIn() {
		return fmt.Errorf("not logged in")
	}
	if !state.User.Role.CanViewDashboards() {
		return fmt.Errorf("records require a manager role")
	}

	page, err := apiClient.Records(ctx, api.ListOptions{PageSize: 50, SortBy: "createdAt", Desc: true})
	if err != nil {
		return err
	}

	for _, record := range page.Items {
		fmt.Printf("%6d  %-12s %-10s %s\n", record.ID, record.Reference, record.Status, strings.TrimSpace(record.SubmittedBy))
	}
	fmt.Printf("%d of %d records\n", len(page.Items), page.TotalCount)
	return nil
}
