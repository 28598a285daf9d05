package keychain

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	devenv "github.com/ABGEO/magtifun.abgeo.dev/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config points at either a local sqlite file or a remote libsql database,
// Url takes precedence when both are set.
type Config struct {
	// ex. `<dev_state>/keychain.db` or `~/.magtifun/keychain.db`
	File string `json:"file"`
	// ex. `libsql://magtifun-abgeo.turso.io`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return openRemote(config.Url, config.AuthToken)
	}
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	return openFile(config.File)
}

func openRemote(rawUrl, authToken string) (*sql.DB, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return nil, err
	}
	if authToken != "" {
		query := u.Query()
		query.Set("authToken", authToken)
		u.RawQuery = query.Encode()
	}
	return sql.Open("libsql", u.String())
}

func openFile(path string) (*sql.DB, error) {
	dbpath, err := devenv.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(dbpath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbpath = filepath.Join(home, dbpath[2:])
	}

	err = os.MkdirAll(filepath.Dir(dbpath), 0700)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite only allows one writer at a time, see
	// https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
