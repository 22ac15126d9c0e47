// Package admin implements taskctl, the operator command line for
// taskboard. It talks to the store directly, without the web server.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/memory"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEphemeralStore   = errors.New("taskctl needs a persistent database; the memory store is lost when taskctl exits")
)

const usage = `Usage: taskctl <command> [flags]

Commands:
  register   create a user account
  help       show this message

Flags are the server's: -d DSN, -k bcrypt cost, -c config file.`

// CheckDSN rejects stores that do not outlive the process, since accounts
// created there would vanish as soon as taskctl exits.
func CheckDSN(dsn string) error {
	if dsn == memory.DSN {
		return ErrEphemeralStore
	}
	return nil
}

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

type App struct {
	accounts Registrar
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(accounts Registrar, in io.Reader, out io.Writer) *App {
	return &App{accounts: accounts, reader: bufio.NewReader(in), out: out}
}

// Run executes command.
func (a *App) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return a.Register(ctx)
	case "help", "":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// Register prompts for the account details and creates the user.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	user, err := a.accounts.Register(ctx, username, email, password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrEmailTaken):
		return fmt.Errorf("%s is already registered: %w", email, err)
	case errors.Is(err, common.ErrorValidation):
		return fmt.Errorf("username, email and password are required: %w", err)
	default:
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id=%s)\n", user.Email, user.ID)
	return nil
}
