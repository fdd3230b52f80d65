package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/focuskeeper/internal/client/api"
	"github.com/dmitrijs2005/focuskeeper/internal/client/config"
)

// Backend is the subset of the REST client the commands use.
type Backend interface {
	Register(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	GetRoot(ctx context.Context, token string) (*api.Focus, error)
	Get(ctx context.Context, token, id string) (*api.Focus, error)
	Create(ctx context.Context, token, name, parentFocusID string) (*api.Focus, error)
}

type App struct {
	config  *config.Config
	backend Backend
	tokens  *TokenStore
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config:  c,
		backend: api.New(c.ServerURL, c.RequestTimeout),
		tokens:  NewTokenStore(c.TokenFile),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run executes the command in args, or starts the REPL when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.runREPL(ctx)
		return nil
	}
	return a.exec(ctx, args[0], args[1:])
}
