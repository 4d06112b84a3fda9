package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/msomdec/projecthub/internal/service"
)

const superuserPasswordEnv = "PROJECTHUB_SUPERUSER_PASSWORD"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// createSuperuser implements the createsuperuser command:
//
//	projecthub createsuperuser -username admin -email admin@example.com -first-name Ada -last-name Lovelace
//
// The password comes from PROJECTHUB_SUPERUSER_PASSWORD or, when unset, an
// echo-less prompt on the terminal.
func createSuperuser(ctx context.Context, accounts *service.AccountService, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(w)
	username := fs.String("username", "", "login name (required)")
	emailAddr := fs.String("email", "", "email address (required)")
	firstName := fs.String("first-name", "", "first name (required)")
	lastName := fs.String("last-name", "", "last name (required)")
	staff := fs.Bool("staff", true, "grant staff status")
	superuser := fs.Bool("superuser", true, "grant superuser status")
	active := fs.Bool("active", true, "mark the account active")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *emailAddr == "" {
		fs.Usage()
		return errors.New("-username and -email are required")
	}

	fields := service.SuperuserFields{FirstName: *firstName, LastName: *lastName}
	// Only flags given on the command line are passed on; the rest keep the
	// service defaults.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "staff":
			fields.IsStaff = staff
		case "superuser":
			fields.IsSuperuser = superuser
		case "active":
			fields.IsActive = active
		}
	})

	password, err := superuserPassword(w)
	if err != nil {
		return err
	}

	acct, err := accounts.CreateSuperuser(ctx, *username, *emailAddr, password, fields)
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	fmt.Fprintf(w, "Superuser %q created.\n", acct.Username)
	return nil
}

func superuserPassword(w io.Writer) (string, error) {
	if pw := os.Getenv(superuserPasswordEnv); pw != "" {
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(w, "Password (again): ")
	second, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords didn't match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be blank")
	}
	return string(first), nil
}
