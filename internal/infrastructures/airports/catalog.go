package airports

import (
	"encoding/json"
	"fmt"
	"os"

	derr "github.com/ozzus/flypy/internal/domain/errors"
	"github.com/ozzus/flypy/internal/domain/ports"
)

// Catalog is a static airport list read once at startup.
type Catalog struct {
	entries []ports.AirportEntry
	err     error
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read airports file: %w", err)
	}

	var entries []ports.AirportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode airports file: %w", err)
	}

	return &Catalog{entries: entries}, nil
}

// Unavailable returns a catalog that reports err on every List call.
func Unavailable(err error) *Catalog {
	return &Catalog{err: fmt.Errorf("%w: %v", derr.ErrCatalogEmpty, err)}
}

func (c *Catalog) List() ([]ports.AirportEntry, error) {
	if c.err != nil {
		return nil, c.err
	}

	out := make([]ports.AirportEntry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}
