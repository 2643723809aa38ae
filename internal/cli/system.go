package cli

import (
	"fmt"
	"os"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized tracklit storage at: %s\n", ctx.Store.GetConfigPath())

	if _, err := os.Stat(ctx.Config.Path); ctx.Config.Path != "" && os.IsNotExist(err) {
		if err := ctx.Config.Save(); err != nil {
			return fmt.Errorf("storage initialized but config could not be saved: %w", err)
		}
		ctx.printf("Config written to: %s\n", ctx.Config.Path)
	}
	return nil
}

// migrator is implemented by the SQL-backed stores
type migrator interface {
	Migrate() (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		ctx.println("This store has no schema to migrate.")
		return nil
	}

	count, err := m.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.println("No migrations to apply. Database is up to date.")
	} else {
		ctx.printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
