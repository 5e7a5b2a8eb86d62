package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	passwordStdin := fs.Bool("password-stdin", false, "read the password from stdin")
	if err := parse(fs, args, "email"); err != nil {
		return err
	}

	if *passwordStdin {
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	sess, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	who := strings.TrimSpace(*email)
	if sess.User != nil && sess.User.Email != "" {
		who = sess.User.Email
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", who)
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	if err := parse(a.flags("logout"), args); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) whoami(ctx context.Context, args []string) error {
	if err := parse(a.flags("whoami"), args); err != nil {
		return err
	}
	cur, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	renderSession(a.out, cur, a.now())
	return nil
}
