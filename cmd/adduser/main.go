package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	"github.com/yukikurage/ticket-tracker/internal/config"
	"github.com/yukikurage/ticket-tracker/internal/database"
	"github.com/yukikurage/ticket-tracker/internal/repository"
	"github.com/yukikurage/ticket-tracker/internal/services"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run registers one user through the same path as the web form, so the very
// first account created here also becomes the admin.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := pflag.NewFlagSet("adduser", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address of the new user")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	fs.StringVar(&cfg.DBDriver, "driver", cfg.DBDriver, "Database driver: sqlite, mysql or postgres")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the sqlite database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(stdout, "Usage: adduser --email <email> [--password <password>] [--db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flag: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	db, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	ctx := context.Background()
	if err := database.NewBootstrapper(db, zap.NewNop()).Ensure(ctx); err != nil {
		return err
	}

	authService := services.NewAuthService(repository.NewUserRepository(db), auth.NewPasswordHasher(cfg.BcryptCost))
	user, err := authService.Register(ctx, services.RegisterInput{Email: *email, Password: password})
	if err != nil {
		return err
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(stdout, "User %s created successfully with ID %d (%s)\n", user.Email, user.ID, role)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
