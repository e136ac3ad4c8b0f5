package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager collects the schema files modules embed and applies them
// against the pool. Schema files are plain SQL, applied in sorted path order;
// files named *-drop.sql are reserved for Rollback and skipped by Run.
type MigrationManager interface {
	RegisterSchema(fs *embed.FS)
	Run() error
	Rollback() error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fs *embed.FS) {
	m.schemas = append(m.schemas, fs)
}

func (m *migrationManager) Run() error {
	return m.execute(func(path string) bool {
		return strings.HasSuffix(path, ".sql") && !strings.HasSuffix(path, "-drop.sql")
	}, false)
}

func (m *migrationManager) Rollback() error {
	return m.execute(func(path string) bool {
		return strings.HasSuffix(path, "-drop.sql")
	}, true)
}

func (m *migrationManager) execute(match func(string) bool, reverse bool) error {
	if m.pool == nil {
		return errors.New("migrations: no database pool configured")
	}

	type schemaFile struct {
		fs   *embed.FS
		path string
	}
	var files []schemaFile
	for _, schema := range m.schemas {
		err := fs.WalkDir(schema, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && match(path) {
				files = append(files, schemaFile{fs: schema, path: path})
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "migrations: walking schema files")
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if reverse {
			return files[i].path > files[j].path
		}
		return files[i].path < files[j].path
	})

	ctx := context.Background()
	for _, f := range files {
		content, err := f.fs.ReadFile(f.path)
		if err != nil {
			return errors.Wrapf(err, "migrations: reading %s", f.path)
		}
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return errors.Wrapf(err, "migrations: applying %s", f.path)
		}
	}
	return nil
}
