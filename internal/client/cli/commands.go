package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focuskeeper/internal/client/api"
)

var errUsage = errors.New("usage")

const helpText = `Available commands:
  register                   create an account
  login                      sign in
  logout                     forget the stored session
  root                       show your root focus
  get <id>                   show a focus and its children
  create <parent-id> <name>  add a child focus
  help                       show this message`

func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout()
	case "root":
		return a.Root(ctx)
	case "get":
		if len(args) != 1 {
			return fmt.Errorf("%w: get <id>", errUsage)
		}
		return a.Get(ctx, args[0])
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("%w: create <parent-id> <name>", errUsage)
		}
		return a.Create(ctx, args[0], strings.Join(args[1:], " "))
	case "help":
		fmt.Fprintln(a.out, helpText)
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (a *App) Register(ctx context.Context) error {
	return a.signIn(ctx, a.backend.Register)
}

func (a *App) Login(ctx context.Context) error {
	return a.signIn(ctx, a.backend.Authenticate)
}

func (a *App) signIn(ctx context.Context, fn func(ctx context.Context, username, password string) (string, error)) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	token, err := fn(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("authentication failed")
		}
		return err
	}

	if err := a.tokens.Save(token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", username)
	return nil
}

func (a *App) Logout() error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Root(ctx context.Context) error {
	return a.withToken(func(token string) error {
		f, err := a.backend.GetRoot(ctx, token)
		if err != nil {
			return err
		}
		printFocus(a.out, f)
		return nil
	})
}

func (a *App) Get(ctx context.Context, id string) error {
	return a.withToken(func(token string) error {
		f, err := a.backend.Get(ctx, token, id)
		if err != nil {
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("focus %s not found", id)
			}
			return err
		}
		printFocus(a.out, f)
		return nil
	})
}

func (a *App) Create(ctx context.Context, parentID, name string) error {
	return a.withToken(func(token string) error {
		f, err := a.backend.Create(ctx, token, name, parentID)
		if err != nil {
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("parent focus %s not found", parentID)
			}
			return err
		}
		fmt.Fprintf(a.out, "Created %s (%s)\n", f.Name, f.ID)
		return nil
	})
}

// withToken runs fn with the stored token. An unauthorized answer clears the
// token so the next command prompts for login.
func (a *App) withToken(fn func(token string) error) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	err = fn(token)
	if errors.Is(err, api.ErrUnauthorized) {
		_ = a.tokens.Clear()
		return fmt.Errorf("%w: session expired, please log in again", ErrNotLoggedIn)
	}
	return err
}
