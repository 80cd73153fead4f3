package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// File is the on-disk catalog format.
//
//	resources:
//	  - id: "1"
//	    name: Nanite
//	    download:
//	      fileName: Nanite.zip
//	      fileSize: 11.3MB
//	      location: https://...
type File struct {
	Resources []FileResource `yaml:"resources"`
}

type FileResource struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Download    *FileDownload `yaml:"download,omitempty"`
}

type FileDownload struct {
	FileName string `yaml:"fileName"`
	FileSize string `yaml:"fileSize"`
	Version  string `yaml:"version,omitempty"`
	Checksum string `yaml:"checksum,omitempty"`
	Location string `yaml:"location"`
}

// Parse decodes a catalog file. Unknown keys are an error so typos don't
// silently drop a download location.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("catalog: decode: %w", err)
	}
	return f, nil
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Default returns the catalog compiled into the binary.
func Default() (File, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Records splits the file into resources and downloads.
func (f File) Records() ([]domain.Resource, []domain.Download) {
	resources := make([]domain.Resource, 0, len(f.Resources))
	downloads := make([]domain.Download, 0, len(f.Resources))
	for _, r := range f.Resources {
		resources = append(resources, domain.Resource{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
		})
		if r.Download == nil {
			continue
		}
		downloads = append(downloads, domain.Download{
			ResourceID: r.ID,
			FileName:   r.Download.FileName,
			FileSize:   r.Download.FileSize,
			Version:    r.Download.Version,
			Checksum:   r.Download.Checksum,
			Location:   r.Download.Location,
		})
	}
	return resources, downloads
}

// Build validates the file by constructing a Catalog from it.
func (f File) Build() (*Catalog, error) {
	return New(f.Records())
}
