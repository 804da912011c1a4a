// Package main adds an account to the CMS credential file, or replaces the
// password of an existing one. The password is read from the first line of
// stdin so it never shows up in the process list.
//
//	echo 'secret12' | useradd -file data/users.yml -user admin
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/atinyakov/filecms/internal/repository"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

// run parses args, reads the password from stdin and stores the account.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fset := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fset.SetOutput(stdout)
	file := fset.String("file", "users.yml", "path to the credential file")
	user := fset.String("user", "", "username to add or update")
	cost := fset.Int("cost", 12, "bcrypt cost")
	if err := fset.Parse(args); err != nil {
		return err
	}

	// Existing accounts may be updated, so only the length rules apply.
	if err := repository.ValidateNewUsername(nil, *user); err != nil {
		return err
	}

	password, err := readPassword(stdin)
	if err != nil {
		return err
	}
	if err := repository.ValidateNewPassword(password); err != nil {
		return err
	}

	ctx := context.Background()
	repo := repository.NewFileCredentialRepository(*file, *cost)

	users, err := repo.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		users = map[string]string{}
	} else if err != nil {
		return err
	}

	hash, err := repo.Hash(password)
	if err != nil {
		return err
	}
	_, existed := users[*user]
	users[*user] = hash
	if err := repo.Save(ctx, users); err != nil {
		return err
	}

	action := "added"
	if existed {
		action = "updated"
	}
	fmt.Fprintf(stdout, "%s %s in %s\n", action, *user, *file)
	return nil
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
