// Command codetrack-cli runs maintenance jobs against the codetrack database
// without going through the api.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
	"github.com/tcp_snm/codetrack/internal/service/import_service"
	"github.com/tcp_snm/codetrack/internal/service/user_service"
	"github.com/urfave/cli/v3"
)

func main() {
	godotenv.Load()
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "codetrack-cli",
		Usage: "codetrack maintenance commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "postgres connection url",
				Sources: cli.EnvVars("DB_URL"),
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			importCommand(),
			setAdminCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func dbURL(c *cli.Command) (string, error) {
	url := c.String("db-url")
	if url == "" {
		return "", fmt.Errorf("--db-url or DB_URL is required")
	}
	return url, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			url, err := dbURL(c)
			if err != nil {
				return err
			}
			return database.RunMigrations(ctx, url)
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a company question sheet (Difficulty,Title,Link,Topics)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "path of the csv sheet"},
			&cli.IntFlag{Name: "company-id", Required: true, Usage: "company every row is tagged with"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			url, err := dbURL(c)
			if err != nil {
				return err
			}
			companyID, err := toInt32ID("company-id", c.Int("company-id"))
			if err != nil {
				return err
			}
			service.InitializeServices()

			f, err := os.Open(c.String("file"))
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := import_service.ParseCSV(f)
			if err != nil {
				return err
			}

			pool, err := database.Connect(ctx, url)
			if err != nil {
				return err
			}
			defer pool.Close()

			db := database.NewStore(pool)
			importer := &import_service.ImportService{
				DB:      db,
				Catalog: &catalog_service.CatalogService{DB: db},
			}
			summary, err := importer.Import(ctx, rows, companyID)
			// a partial summary is still worth printing
			if printErr := printJSON(summary); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

// setAdminCommand is how the first admin gets promoted.
func setAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "set-admin",
		Usage: "promote (or with --revoke demote) a user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-name", Required: true},
			&cli.BoolFlag{Name: "revoke", Usage: "remove the admin flag instead"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			url, err := dbURL(c)
			if err != nil {
				return err
			}
			pool, err := database.Connect(ctx, url)
			if err != nil {
				return err
			}
			defer pool.Close()

			users := user_service.NewUserService(database.NewStore(pool))
			profile, err := users.SetAdmin(ctx, c.String("user-name"), !c.Bool("revoke"))
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}
}

// toInt32ID rejects ids the int32 columns cannot hold.
func toInt32ID(name string, v int) (int32, error) {
	if v < 1 || v > math.MaxInt32 {
		return 0, fmt.Errorf("--%s must be between 1 and %d, got %d", name, math.MaxInt32, v)
	}
	return int32(v), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
