package catalogs

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/vinoteca/pkg/errors"
)

// Format is the encoding of a catalog data source.
type Format string

// Supported data formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// WineryRecord is a winery as stored in a data source.
type WineryRecord struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// VarietalRecord is a varietal as stored in a data source.
type VarietalRecord struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// WineRecord is a wine as stored in a data source. Winery and Varietals hold ids.
type WineRecord struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Winery    string   `json:"winery" yaml:"winery"`
	Varietals []string `json:"varietals" yaml:"varietals"`
	Vintages  []int    `json:"vintages" yaml:"vintages"`
}

// Dataset is the record set a catalog is built from.
type Dataset struct {
	Wineries  []WineryRecord   `json:"wineries" yaml:"wineries"`
	Varietals []VarietalRecord `json:"varietals" yaml:"varietals"`
	Wines     []WineRecord     `json:"wines" yaml:"wines"`
}

// rawDataset accepts both the English keys and the Spanish keys used by
// older data files (bodegas, cepas, vinos, bodega, partidas).
type rawDataset struct {
	Wineries  []rawNamed `json:"wineries" yaml:"wineries"`
	Varietals []rawNamed `json:"varietals" yaml:"varietals"`
	Wines     []rawWine  `json:"wines" yaml:"wines"`

	Bodegas []rawNamed `json:"bodegas" yaml:"bodegas"`
	Cepas   []rawNamed `json:"cepas" yaml:"cepas"`
	Vinos   []rawWine  `json:"vinos" yaml:"vinos"`
}

type rawNamed struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Nombre string `json:"nombre" yaml:"nombre"`
}

func (n rawNamed) name() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Nombre
}

type rawWine struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Winery    string   `json:"winery" yaml:"winery"`
	Varietals []string `json:"varietals" yaml:"varietals"`
	Vintages  []int    `json:"vintages" yaml:"vintages"`

	Nombre   string   `json:"nombre" yaml:"nombre"`
	Bodega   string   `json:"bodega" yaml:"bodega"`
	Cepas    []string `json:"cepas" yaml:"cepas"`
	Partidas []int    `json:"partidas" yaml:"partidas"`
}

// Decode parses data in the given format. The document must be a mapping;
// absent collections decode as empty.
func Decode(data []byte, format Format) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &errors.ParseError{Format: string(format), Message: "empty document"}
	}

	var raw rawDataset
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.WrapParse(string(format), "", err)
		}
		if _, ok := doc.(map[string]any); !ok {
			return nil, &errors.ParseError{Format: string(format), Message: "document is not a mapping"}
		}
		if err := yaml.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.WrapParse(string(format), "", err)
		}
	case FormatJSON, "":
		if trimmed[0] != '{' {
			return nil, &errors.ParseError{Format: string(FormatJSON), Message: "document is not an object"}
		}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.WrapParse(string(FormatJSON), "", err)
		}
	default:
		return nil, &errors.ValidationError{
			Field:   "format",
			Value:   format,
			Message: "unsupported data format",
		}
	}

	return raw.normalize(), nil
}

func (r *rawDataset) normalize() *Dataset {
	wineries := r.Wineries
	if len(wineries) == 0 {
		wineries = r.Bodegas
	}
	varietals := r.Varietals
	if len(varietals) == 0 {
		varietals = r.Cepas
	}

	ds := &Dataset{
		Wineries:  make([]WineryRecord, 0, len(wineries)),
		Varietals: make([]VarietalRecord, 0, len(varietals)),
	}
	for _, w := range wineries {
		ds.Wineries = append(ds.Wineries, WineryRecord{ID: w.ID, Name: w.name()})
	}
	for _, v := range varietals {
		ds.Varietals = append(ds.Varietals, VarietalRecord{ID: v.ID, Name: v.name()})
	}

	wines := r.Wines
	if len(wines) == 0 {
		wines = r.Vinos
	}
	ds.Wines = make([]WineRecord, 0, len(wines))
	for _, w := range wines {
		ds.Wines = append(ds.Wines, w.record())
	}
	return ds
}

func (w rawWine) record() WineRecord {
	rec := WineRecord{
		ID:        w.ID,
		Name:      w.Name,
		Winery:    w.Winery,
		Varietals: w.Varietals,
		Vintages:  w.Vintages,
	}
	if rec.Name == "" {
		rec.Name = w.Nombre
	}
	if rec.Winery == "" {
		rec.Winery = w.Bodega
	}
	if rec.Varietals == nil {
		rec.Varietals = w.Cepas
	}
	if rec.Vintages == nil {
		rec.Vintages = w.Partidas
	}
	return rec
}
