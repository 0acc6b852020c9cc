package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// manifest describes the embedded migration set: the highest version number
// and a checksum over every up migration, used to detect drift between the
// binary and the database it last bootstrapped.
type manifest struct {
	latest   uint
	checksum string
}

func readManifest() (*manifest, error) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	var latest uint
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		version, err := migrationVersion(name)
		if err != nil {
			return nil, err
		}
		if version > latest {
			latest = version
		}
		names = append(names, name)
	}
	if latest == 0 {
		return nil, errors.New("no embedded migrations found")
	}

	sort.Strings(names)
	hasher := sha256.New()
	for _, name := range names {
		content, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		hasher.Write([]byte(name))
		hasher.Write([]byte{0})
		hasher.Write(content)
		hasher.Write([]byte{0})
	}

	return &manifest{
		latest:   latest,
		checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

func migrationVersion(name string) (uint, error) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, fmt.Errorf("invalid migration filename: %s", name)
	}
	parsed, err := strconv.ParseUint(prefix, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid migration filename: %s", name)
	}
	return uint(parsed), nil
}
