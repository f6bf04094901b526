// Command admin bundles operational tasks that run against the same
// database as the API server.
//
// Usage:
//
//	admin waitfordb        block until the database accepts connections
//	admin createsuperuser  create an account with staff and superuser flags
//
// Shared server flags (-a, -d, -i, -w, -config) and environment variables
// apply to both subcommands.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/a-mean-h/recepie-api-app/internal/flagx"
	"github.com/a-mean-h/recepie-api-app/internal/server/config"
	"github.com/a-mean-h/recepie-api-app/internal/server/dbwait"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/repomanager"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: admin <waitfordb|createsuperuser> [flags]")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "waitfordb":
		err = waitForDB(ctx, cfg, db)
	case "createsuperuser":
		err = createSuperuser(ctx, cfg, db)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func waitForDB(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	fmt.Println("Waiting for database...")
	if err := dbwait.Wait(ctx, db, cfg.DBWaitInterval, cfg.DBWaitTimeout); err != nil {
		return err
	}
	fmt.Println("Database available!")
	return nil
}

func createSuperuser(ctx context.Context, cfg *config.Config, db *sql.DB) error {

	args := flagx.FilterArgs(os.Args[2:], []string{"-e"})
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fs.String("e", "", "email address for the new superuser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Print("Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	if err := dbwait.Wait(ctx, db, cfg.DBWaitInterval, cfg.DBWaitTimeout); err != nil {
		return err
	}

	rm := &repomanager.PostgresRepositoryManager{}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm)
	user, err := us.CreateSuperuser(ctx, *email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Superuser %s created.\n", user.Email)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	fmt.Print("Password (again): ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}
