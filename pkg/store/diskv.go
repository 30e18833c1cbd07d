package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/timeline/pkg/chart"
)

// Document is one named dataset: the group rows and their items, in the
// order the chart should render them.
type Document struct {
	Name   string        `json:"name"`
	Groups []chart.Group `json:"groups"`
	Items  []chart.Item  `json:"items"`
}

// Persistence defines the persistence contract for dataset documents.
type Persistence interface {
	Datasets(ctx context.Context) []string
	Get(ctx context.Context, name string) (*Document, error)
	Store(doc *Document) error
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Datasets(ctx context.Context) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		name, err := fromDataset(pk.Path[0])
		if err != nil {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Get(ctx context.Context, name string) (*Document, error) {
	val, err := p.d.Read(toKey(name))
	if err != nil {
		return nil, fmt.Errorf("store: read dataset %q: %w", name, err)
	}
	doc := &Document{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, fmt.Errorf("store: decode dataset %q: %w", name, err)
	}
	doc.Name = name
	return doc, nil
}

func (p *persistence) Store(doc *Document) error {
	if doc == nil || strings.TrimSpace(doc.Name) == "" {
		return errors.New("store: dataset name required")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(doc.Name), data)
}

func (p *persistence) Delete(name string) error {
	return p.d.Erase(toKey(name))
}

const documentFile = "timeline.json"

// Keys are `<encoded dataset>:<file>`; each dataset gets its own directory.
// The encoding keeps arbitrary dataset names path- and separator-safe.

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{FileName: parts[0]}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s:%s", strings.Join(pathKey.Path, ":"), pathKey.FileName)
}

func toKey(name string) string {
	return fmt.Sprintf("%s:%s", toDataset(name), documentFile)
}

func toDataset(name string) string {
	return base64.URLEncoding.EncodeToString([]byte(name))
}

func fromDataset(s string) (string, error) {
	name, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(name), nil
}
