package platform

import (
	"fmt"

	"setnodeid/config"
	"setnodeid/eeprom"
	"setnodeid/infra/filestore"
	"setnodeid/infra/sqlite"
)

// OpenBacking opens the persistent backing for kind at path. An empty kind
// means the file backing; an empty path means the default for that kind.
func OpenBacking(kind, path string) (eeprom.Backing, error) {
	if kind == "" {
		kind = config.StoreFile
	}

	switch kind {
	case config.StoreFile:
		if path == "" {
			path = DefaultImagePath()
		}
		b, err := filestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file store %s: %w", path, err)
		}
		return b, nil
	case config.StoreSQLite:
		if path == "" {
			path = DefaultDatabasePath()
		}
		b, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
		}
		return b, nil
	case config.StoreMemory:
		return eeprom.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
