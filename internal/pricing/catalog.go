package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Format describes one paper size offered by the shop. Aspect is the
// portrait-orientation print ratio (width over height).
type Format struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	AspectW   float64 `json:"aspect_w"`
	AspectH   float64 `json:"aspect_h"`
}

func (f Format) Aspect(landscape bool) float64 {
	if f.AspectW <= 0 || f.AspectH <= 0 {
		return 1
	}
	if landscape {
		return f.AspectH / f.AspectW
	}
	return f.AspectW / f.AspectH
}

type Catalog struct {
	formats map[string]Format
}

// DefaultCatalog carries the shop's standard offering.
func DefaultCatalog() *Catalog {
	return newCatalog([]Format{
		{Name: "10x15", BasePrice: 1.5, AspectW: 2, AspectH: 3},
		{Name: "13x18", BasePrice: 2, AspectW: 13, AspectH: 18},
		{Name: "15x21", BasePrice: 2.5, AspectW: 5, AspectH: 7},
		{Name: "18x25", BasePrice: 5, AspectW: 18, AspectH: 25},
		{Name: "21x30", BasePrice: 10, AspectW: 7, AspectH: 10},
	})
}

// LoadCatalog reads format definitions from the JSON file named by the
// PRINT_CATALOG_JSON_PATH env var, falling back to the default catalog when
// the var is unset.
func LoadCatalog() (*Catalog, error) {
	path := strings.TrimSpace(os.Getenv("PRINT_CATALOG_JSON_PATH"))
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var formats []Format
	if err := json.Unmarshal(raw, &formats); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("catalog file %q lists no formats", path)
	}
	return newCatalog(formats), nil
}

func newCatalog(formats []Format) *Catalog {
	m := make(map[string]Format, len(formats))
	for _, f := range formats {
		m[f.Name] = f
	}
	return &Catalog{formats: m}
}

// Lookup is the strict accessor; most callers want the lenient BasePrice.
func (c *Catalog) Lookup(name string) (Format, error) {
	f, ok := c.formats[normalizeFormat(name)]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// BasePrice returns 0 for unknown formats. The storefront historically treated
// an unknown format as free rather than failing the whole order.
func (c *Catalog) BasePrice(name string) float64 {
	f, err := c.Lookup(name)
	if err != nil {
		return 0
	}
	return f.BasePrice
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.formats))
	for n := range c.formats {
		names = append(names, n)
	}
	return names
}

// normalizeFormat strips the landscape label suffix the client appends at add
// time ("10x15 (obr.)") so the display quirk cannot change the price.
func normalizeFormat(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, " ("); i > 0 {
		name = name[:i]
	}
	return name
}
