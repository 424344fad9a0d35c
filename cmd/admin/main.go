// Command admin manages hub accounts from the shell: it can add a user
// and reset a forgotten password without going through the web UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	_ "modernc.org/sqlite"

	"usdh/internal/adapters/storage"
	accountStore "usdh/internal/adapters/storage/account"
	"usdh/internal/application/orchestrators"
	"usdh/internal/config"
	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

const usage = `usage: admin [-config file] [-env-file file] <command> [flags]

commands:
  adduser        -username NAME -email ADDR [-role user|admin]
  resetpassword  -username NAME
`

func main() {
	configFile := flag.String("config", "", "path to a usdh.yaml file")
	envFile := flag.String("env-file", "", "path to a .env file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*configFile, *envFile, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(configFile, envFile, command string, args []string) error {
	cfg, err := config.Load(config.Options{EnvFile: envFile, ConfigFile: configFile})
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database.Path, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()
	store := accountStore.NewSQLiteStore(db)

	switch command {
	case "adduser":
		return addUser(ctx, store, args)
	case "resetpassword":
		return resetPassword(ctx, store, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func addUser(ctx context.Context, store *accountStore.SQLiteStore, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	username := fs.String("username", "", "login name")
	addr := fs.String("email", "", "email address")
	role := fs.String("role", account.RoleUser, "user or admin")
	fs.Parse(args)

	password, confirm, err := promptPassword()
	if err != nil {
		return err
	}
	u, err := orchestrators.ExecuteRegister(ctx, orchestrators.RegisterInput{
		Username: *username,
		Email:    *addr,
		Password: password,
		Confirm:  confirm,
		Role:     *role,
	}, orchestrators.RegisterDeps{AccountStore: store, Now: time.Now})
	if err != nil {
		return err
	}
	fmt.Printf("created %s %q (id %d)\n", u.Role, u.Username, u.ID)
	return nil
}

func resetPassword(ctx context.Context, store *accountStore.SQLiteStore, args []string) error {
	fs := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	username := fs.String("username", "", "login name")
	fs.Parse(args)
	if strings.TrimSpace(*username) == "" {
		return apperr.Validation("-username is required")
	}

	password, confirm, err := promptPassword()
	if err != nil {
		return err
	}
	if err := orchestrators.ExecuteResetPassword(ctx, orchestrators.ResetPasswordInput{
		Username:    *username,
		NewPassword: password,
		Confirm:     confirm,
	}, orchestrators.ResetPasswordDeps{AccountStore: store}); err != nil {
		return err
	}
	fmt.Printf("password updated for %q\n", strings.TrimSpace(*username))
	return nil
}

// promptPassword reads the password twice from the terminal without echo.
func promptPassword() (string, string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", "", err
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", "", err
	}
	return string(first), string(second), nil
}
