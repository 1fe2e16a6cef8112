package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"CoinVault/internal/model"
)

// Directory is the read-only lookup table of known assets, loaded once at
// startup from a currency map snapshot and passed by reference.
type Directory struct {
	assets []model.Asset
}

// snapshot is the on-disk shape: the provider map response saved verbatim.
type snapshot struct {
	Data []model.Asset `json:"data"`
}

// New builds a Directory from an asset list, preserving its order.
func New(assets []model.Asset) *Directory {
	return &Directory{assets: assets}
}

// Load reads a currency map snapshot file.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset directory: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse asset directory %s: %w", path, err)
	}
	return New(snap.Data), nil
}

// Resolve matches each query case-insensitively against every asset's name
// and symbol. The result holds one entry per matching (query, asset) pair in
// directory order; duplicates across queries are kept and unmatched queries
// contribute nothing.
func (d *Directory) Resolve(queries []string) []model.Asset {
	var out []model.Asset
	for _, a := range d.assets {
		for _, q := range queries {
			if strings.EqualFold(q, a.Name) || strings.EqualFold(q, a.Symbol) {
				out = append(out, a)
			}
		}
	}
	return out
}

// ListAll returns "[SYM] Name" labels in directory order.
func (d *Directory) ListAll() []string {
	out := make([]string, 0, len(d.assets))
	for _, a := range d.assets {
		out = append(out, fmt.Sprintf("[%s] %s", a.Symbol, a.Name))
	}
	return out
}

// Len returns the number of known assets.
func (d *Directory) Len() int { return len(d.assets) }
