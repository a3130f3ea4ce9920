package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"skb_backend/internals/configs"
	"skb_backend/internals/constants"
	database "skb_backend/internals/databases"
	"skb_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	configs.SetupLogger(cfg.Log)

	app := &cli.App{
		Name:  "skbctl",
		Usage: "SKB backend operations",
		Commands: []*cli.Command{
			migrateCommand(cfg),
			seedCommand(cfg),
			createAdminCommand(cfg),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("skbctl")
	}
}

func migrateCommand(cfg configs.Config) *cli.Command {
	dsn := func() string { return database.DSN(cfg.Database, false) }
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					if err := database.MigrateUp(dsn()); err != nil {
						return err
					}
					return printVersion(dsn())
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					if steps < 1 {
						return errors.New("--steps must be at least 1")
					}
					if err := database.MigrateDown(dsn(), steps); err != nil {
						return err
					}
					return printVersion(dsn())
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return printVersion(dsn())
				},
			},
		},
	}
}

func printVersion(dsn string) error {
	v, dirty, err := database.MigrationVersion(dsn)
	if err != nil {
		return err
	}
	fmt.Printf("schema version %d (dirty=%t)\n", v, dirty)
	return nil
}

func openDB(cfg configs.Config) (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	database.TunePool(db, cfg.Database)
	return db, nil
}

func seedCommand(cfg configs.Config) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the sample members, notices, gallery and tournaments",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "fake-members", Usage: "extra generated members"},
			&cli.Uint64Flag{Name: "faker-seed", Value: 1, Usage: "gofakeit seed"},
			&cli.StringFlag{Name: "admin", EnvVars: []string{"SEED_ADMIN_USERNAME"}, Usage: "super-admin to create and attribute content to"},
			&cli.StringFlag{Name: "admin-email", EnvVars: []string{"SEED_ADMIN_EMAIL"}},
			&cli.StringFlag{Name: "admin-password", EnvVars: []string{"SEED_ADMIN_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			return seeds.RunAll(c.Context, db, seeds.Options{
				FakeMembers:   c.Int("fake-members"),
				FakerSeed:     c.Uint64("faker-seed"),
				AdminUsername: c.String("admin"),
				AdminEmail:    c.String("admin-email"),
				AdminPassword: c.String("admin-password"),
			})
		},
	}
}

func createAdminCommand(cfg configs.Config) *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an admin account if it does not exist",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
			&cli.BoolFlag{Name: "super", Usage: "grant super-admin"},
		},
		Action: func(c *cli.Context) error {
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			role := constants.RoleAdmin
			if c.Bool("super") {
				role = constants.RoleSuperAdmin
			}
			id, err := seeds.EnsureAdmin(c.Context, db, c.String("username"), c.String("email"), c.String("password"), role)
			if err != nil {
				return err
			}
			fmt.Printf("admin %s ready (%s)\n", c.String("username"), id)
			return nil
		},
	}
}
