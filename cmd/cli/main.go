// Command nk is a CLI client for the notes service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// ---- utils ----

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `nk CLI
Usage:
  nk [-addr URL] [-auth] <cmd> [args]

Commands:
  version
  register   -u <username> -p <password>
  login      -u <username> -p <password>        (saves token)
  logout
  me
  notes list
  notes add  -t <title> -c <content>
  notes edit -id <id> -t <title> -c <content>
  notes rm   -id <id>
`)
}

var errUsage = errors.New("usage")

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. Global flags precede the command name.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	gfs := flag.NewFlagSet("nk", flag.ContinueOnError)
	gfs.SetOutput(stderr)
	addr := gfs.String("addr", "http://localhost:3000", "server base URL")
	auth := gfs.Bool("auth", false, "send the saved token with notes commands")
	if err := gfs.Parse(args); err != nil {
		return errUsage
	}
	if gfs.NArg() < 1 {
		return errUsage
	}
	cmd, rest := gfs.Arg(0), gfs.Args()[1:]

	sess, err := newSession()
	if err != nil {
		return err
	}

	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "nk %s (%s)\n", version, buildDate)
		return nil

	case "register", "login":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(stderr)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		if err := fs.Parse(rest); err != nil || *u == "" || *p == "" {
			return fmt.Errorf("%s: need -u and -p", cmd)
		}
		cli := newClient(*addr, "")

		if cmd == "register" {
			usr, err := cli.register(ctx, *u, *p)
			if err != nil {
				return err
			}
			printJSON(stdout, usr)
			return nil
		}

		res, err := cli.login(ctx, *u, *p)
		if err != nil {
			return err
		}
		exp := res.ExpiresAt
		if e, ok := tokenExpiry(res.Token); ok && (exp.IsZero() || e.Before(exp)) {
			exp = e
		}
		if exp.IsZero() {
			return errors.New("login: server returned a token without expiry")
		}
		if err := sess.store(sessionFile{Server: *addr, Username: *u, Token: res.Token, ExpiresAt: exp}); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "ok")
		return nil

	case "logout":
		if err := sess.clear(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "ok")
		return nil

	case "me":
		tok, err := sess.token(*addr)
		if err != nil {
			return err
		}
		m, err := newClient(*addr, tok).me(ctx)
		if err != nil {
			return err
		}
		printJSON(stdout, m)
		return nil

	case "notes":
		var bearer string
		if *auth {
			tok, err := sess.token(*addr)
			if err != nil {
				return err
			}
			bearer = tok
		}
		return runNotes(ctx, newClient(*addr, bearer), rest, stdout, stderr)

	default:
		return errUsage
	}
}

func runNotes(ctx context.Context, cli *apiClient, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet("notes "+sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	id := fs.Int64("id", 0, "note id")
	title := fs.String("t", "", "title")
	content := fs.String("c", "", "content")
	if err := fs.Parse(rest); err != nil {
		return errUsage
	}

	switch sub {
	case "list":
		ns, err := cli.listNotes(ctx)
		if err != nil {
			return err
		}
		printJSON(stdout, ns)
	case "add":
		n, err := cli.addNote(ctx, *title, *content)
		if err != nil {
			return err
		}
		printJSON(stdout, n)
	case "edit":
		if *id == 0 {
			return errors.New("notes edit: need -id")
		}
		n, err := cli.editNote(ctx, *id, *title, *content)
		if err != nil {
			return err
		}
		printJSON(stdout, n)
	case "rm":
		if *id == 0 {
			return errors.New("notes rm: need -id")
		}
		if err := cli.deleteNote(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "deleted")
	default:
		return errUsage
	}
	return nil
}
