package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/devserver"
	"github.com/surveydesk/go-console/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname("SurveyDesk Dev API")

	server := &http.Server{Addr: c.GetPort(), Handler: seededServer().Handler()}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

// seededServer loads the fixture accounts and table data the console demos
// against. manager@example.com logs straight in; user@example.com parks on a
// two-factor approval that resolves after two status checks.
func seededServer() *devserver.Server {
	s := devserver.New()

	s.AddAccount(devserver.Account{
		Profile: api.Profile{
			ID: 1, Email: "manager@example.com", Mobile: "+15550100",
			RoleIdentifier: "Manager", RoleName: "Manager",
			FirstName: "Morgan", LastName: "Hale",
		},
		Password: "manager123",
	})
	s.AddAccount(devserver.Account{
		Profile: api.Profile{
			ID: 2, Email: "user@example.com", Mobile: "+15550101",
			RoleIdentifier: "User", RoleName: "User",
			FirstName: "Uma", LastName: "Reyes",
		},
		Password:     "user123",
		TwoFactor:    true,
		Outcome:      api.TwoFactorApproved,
		ResolveAfter: 2,
	})

	s.SeedTasks([]api.Task{
		{ID: 1, Title: "Review Q3 site survey", Status: "open", AssigneeID: 2, DueDate: time.Now().Add(72 * time.Hour)},
		{ID: 2, Title: "Upload inspection photos", Status: "open", AssigneeID: 2},
		{ID: 3, Title: "Close out permit 1142", Status: "blocked", AssigneeID: 1},
	})
	s.SeedRecords([]api.Record{
		{ID: 10, Reference: "SRV-2026-0010", ApplicationTypeID: 1, Status: "submitted", SubmittedBy: "Uma Reyes", CreatedAt: time.Now().Add(-48 * time.Hour)},
		{ID: 11, Reference: "SRV-2026-0011", ApplicationTypeID: 2, Status: "approved", SubmittedBy: "Morgan Hale", CreatedAt: time.Now().Add(-24 * time.Hour)},
	})
	s.SeedApplicationTypes([]api.ApplicationType{
		{ID: 1, Name: "Site Survey", Code: "SITE", Active: true},
		{ID: 2, Name: "Permit Renewal", Code: "PERMIT", Active: true},
	})

	return s
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
