package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/racecore"
)

// fileStore keeps one file per result in dir, named <id><ext>.
type fileStore struct {
	dir       string
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func newFileStore(dir, ext string, marshal func(any) ([]byte, error), unmarshal func([]byte, any) error) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return fileStore{dir: dir, ext: ext, marshal: marshal, unmarshal: unmarshal}, nil
}

func (p fileStore) path(id string) string {
	return filepath.Join(p.dir, id+p.ext)
}

func (p fileStore) save(result racecore.RaceResult) error {
	if err := checkID(result.ID); err != nil {
		return err
	}
	data, err := p.marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fn := p.path(result.ID)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p fileStore) load(id string) (racecore.RaceResult, error) {
	if err := checkID(id); err != nil {
		return racecore.RaceResult{}, err
	}
	fn := p.path(id)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return racecore.RaceResult{}, fmt.Errorf("result %q: %w", id, ErrNotFound)
		}
		return racecore.RaceResult{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var result racecore.RaceResult
	if err := p.unmarshal(data, &result); err != nil {
		return racecore.RaceResult{}, fmt.Errorf("unmarshal %s: %w", fn, err)
	}
	result.ID = id
	return result, nil
}

func (p fileStore) list(ctx context.Context, filter Filter) ([]racecore.RaceResult, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", p.dir, err)
	}
	var results []racecore.RaceResult
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := strings.CutSuffix(e.Name(), p.ext)
		if e.IsDir() || !ok {
			continue
		}
		r, err := p.load(id)
		if err != nil {
			return nil, err
		}
		if filter != nil && !filter(r) {
			continue
		}
		results = append(results, r)
	}
	sortResults(results)
	return results, nil
}

// JSONStore is a file-based result store using JSON serialization.
type JSONStore struct {
	fs fileStore
}

// NewJSONStore creates a JSONStore, ensuring the directory exists.
func NewJSONStore(dir string) (*JSONStore, error) {
	fs, err := newFileStore(dir, ".json", func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "  ")
	}, json.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &JSONStore{fs: fs}, nil
}

func (p *JSONStore) Save(_ context.Context, result racecore.RaceResult) error {
	return p.fs.save(result)
}

func (p *JSONStore) Load(_ context.Context, id string) (racecore.RaceResult, error) {
	return p.fs.load(id)
}

func (p *JSONStore) List(ctx context.Context, filter Filter) ([]racecore.RaceResult, error) {
	return p.fs.list(ctx, filter)
}

// YAMLStore is a file-based result store using YAML serialization.
type YAMLStore struct {
	fs fileStore
}

// NewYAMLStore creates a YAMLStore, ensuring the directory exists.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	fs, err := newFileStore(dir, ".yaml", yaml.Marshal, yaml.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &YAMLStore{fs: fs}, nil
}

func (p *YAMLStore) Save(_ context.Context, result racecore.RaceResult) error {
	return p.fs.save(result)
}

func (p *YAMLStore) Load(_ context.Context, id string) (racecore.RaceResult, error) {
	return p.fs.load(id)
}

func (p *YAMLStore) List(ctx context.Context, filter Filter) ([]racecore.RaceResult, error) {
	return p.fs.list(ctx, filter)
}

// MultiStore saves to every store and reads from the first.
type MultiStore []ResultStore

func (m MultiStore) Save(ctx context.Context, result racecore.RaceResult) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiStore) Load(ctx context.Context, id string) (racecore.RaceResult, error) {
	if len(m) == 0 {
		return racecore.RaceResult{}, fmt.Errorf("result %q: %w", id, ErrNotFound)
	}
	return m[0].Load(ctx, id)
}

func (m MultiStore) List(ctx context.Context, filter Filter) ([]racecore.RaceResult, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return m[0].List(ctx, filter)
}
