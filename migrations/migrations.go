// Package migrations встраивает SQL-миграции хранилища в бинарник.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres возвращает миграции для PostgreSQL.
func Postgres() fs.FS {
	return mustSub("postgres")
}

// SQLite возвращает миграции для SQLite.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
