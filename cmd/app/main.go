package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"membro-hub/internal/config"
	directoryservice "membro-hub/internal/directory-service"
	"membro-hub/internal/directory-service/adapters/driven/db"
	"membro-hub/internal/directory-service/adapters/driven/notification"
	"membro-hub/internal/directory-service/adapters/driven/xlsx"
	"membro-hub/internal/directory-service/core/service"
	"membro-hub/internal/mylogger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: membro-hub <serve|import-membros|seed-demo|create-admin> [flags]")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "serve":
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		memory := serveCmd.Bool("memory", false, "run with in-memory backends (no Postgres/RabbitMQ)")
		serveCmd.Parse(os.Args[2:])

		if err := directoryservice.Execute(ctx, mylog, cfg, *memory); err != nil {
			mylog.Error("server stopped with error", err)
			os.Exit(1)
		}

	case "import-membros":
		importCmd := flag.NewFlagSet("import-membros", flag.ExitOnError)
		path := importCmd.String("path", "", "path to the xlsx roster file")
		importCmd.Parse(os.Args[2:])
		if *path == "" {
			fmt.Fprintln(os.Stderr, "import-membros: -path is required")
			os.Exit(1)
		}

		database := mustDB(ctx, cfg, mylog)
		defer database.Close()

		importer := service.NewImporter(db.NewMembroRepo(database), mylog)
		n, err := importer.Run(ctx, xlsx.NewReader(*path))
		if err != nil {
			mylog.Error("import failed", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d membros\n", n)

	case "seed-demo":
		database := mustDB(ctx, cfg, mylog)
		defer database.Close()

		if err := service.SeedDemo(ctx, db.NewMembroRepo(database), mylog); err != nil {
			mylog.Error("seed failed", err)
			os.Exit(1)
		}
		fmt.Println("demo roster seeded")

	case "create-admin":
		adminCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
		name := adminCmd.String("name", "", "admin display name")
		email := adminCmd.String("email", "", "admin email")
		password := adminCmd.String("password", "", "admin password")
		adminCmd.Parse(os.Args[2:])
		if *name == "" || *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "create-admin: -name, -email and -password are required")
			os.Exit(1)
		}

		database := mustDB(ctx, cfg, mylog)
		defer database.Close()

		authService := service.NewAuthService(ctx, cfg, db.NewUserRepo(database), notification.NewLogNotifier(mylog), mylog)
		id, err := authService.CreateAdmin(ctx, *name, *email, *password)
		if err != nil {
			mylog.Error("create-admin failed", err)
			os.Exit(1)
		}
		fmt.Printf("admin created: %s\n", id)

	default:
		usage()
	}
}

// mustDB runs migrations and opens the connection pool, exiting on failure.
func mustDB(ctx context.Context, cfg *config.Config, mylog mylogger.Logger) *db.DB {
	if err := db.RunMigrations(ctx, cfg.DB.DSN()); err != nil {
		mylog.Error("migrations failed", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DB, mylog)
	if err != nil {
		mylog.Error("database connection failed", err)
		os.Exit(1)
	}
	return database
}
