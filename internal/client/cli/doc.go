// Package cli provides the FocusKeeper command-line client.
//
// Invoked with a command it runs that command and exits; invoked without one
// it starts a small REPL over the same commands. The session token obtained by
// register or login is kept in a file so later invocations stay signed in.
//
// Commands:
//   - register, login, logout
//   - root                       show the root focus and its children
//   - get <id>                   show a focus and its children
//   - create <parent-id> <name>  add a child focus
package cli
