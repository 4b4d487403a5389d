package steamdata

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/pygacity/sandlersteam/pkg/region"
	"github.com/pygacity/sandlersteam/pkg/resolver"
	"github.com/pygacity/sandlersteam/pkg/satd"
)

// Source file names inside a table directory.
const (
	FileSaturationT = "satd_T.txt"
	FileSaturationP = "satd_P.txt"
	FileSuperheated = "suph.txt"
	FileSubcooled   = "subc.txt"
)

// Files lists every source file a table directory must contain.
func Files() []string {
	return []string{FileSaturationT, FileSaturationP, FileSuperheated, FileSubcooled}
}

//go:embed data/*.txt
var embedded embed.FS

// Embedded returns the embedded table directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load parses the four table files from fsys.
func Load(fsys fs.FS) (resolver.Tables, error) {
	byT, err := loadSaturation(fsys, FileSaturationT)
	if err != nil {
		return resolver.Tables{}, err
	}
	byP, err := loadSaturation(fsys, FileSaturationP)
	if err != nil {
		return resolver.Tables{}, err
	}
	sat, err := satd.New(byT, byP)
	if err != nil {
		return resolver.Tables{}, fmt.Errorf("saturation table: %w", err)
	}

	suph, err := loadRegion(fsys, FileSuperheated, region.Superheated)
	if err != nil {
		return resolver.Tables{}, err
	}
	subc, err := loadRegion(fsys, FileSubcooled, region.Subcooled)
	if err != nil {
		return resolver.Tables{}, err
	}

	tables := resolver.Tables{Saturation: sat, Superheated: suph, Subcooled: subc}
	if err := tables.Validate(); err != nil {
		return resolver.Tables{}, err
	}
	return tables, nil
}

// LoadDir parses the table files in dir.
func LoadDir(dir string) (resolver.Tables, error) {
	return Load(os.DirFS(dir))
}

var defaultTables = sync.OnceValues(func() (resolver.Tables, error) {
	return Load(Embedded())
})

// Default returns the embedded tables, parsed once per process.
func Default() (resolver.Tables, error) {
	return defaultTables()
}

func loadSaturation(fsys fs.FS, name string) ([]satd.Point, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	pts, err := ParseSaturation(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return pts, nil
}

func loadRegion(fsys fs.FS, name string, kind region.Kind) (*region.Table, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	samples, err := ParseRegion(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tbl, err := region.New(kind, samples)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tbl, nil
}

