package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aevon-lab/sift/internal/dataset"
)

var _ dataset.Repository = (*FileSystemRepository)(nil)

// FileSystemRepository implements dataset.Repository over a flat directory.
// A dataset named "members" is read from the first of:
//
//	members.proto + members.json   (protobuf records as a protojson list)
//	members.yaml
//	members.yml
//	members.json
//
// The directory is never written to.
type FileSystemRepository struct {
	rootDir string
}

// NewFileSystemRepository creates a new file system backed repository.
func NewFileSystemRepository(rootDir string) *FileSystemRepository {
	return &FileSystemRepository{
		rootDir: rootDir,
	}
}

// Create is not supported in read-only file system mode.
// Add the file to the directory instead.
func (r *FileSystemRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	return fmt.Errorf("%w: add %s.%s to %s instead", dataset.ErrReadOnly, ds.Name, ds.Format, r.rootDir)
}

// Get reads a dataset from disk.
func (r *FileSystemRepository) Get(ctx context.Context, name string) (*dataset.Dataset, error) {
	if err := dataset.ValidateName(name); err != nil {
		return nil, dataset.ErrNotFound
	}

	protoPath := r.file(name, ".proto")
	jsonPath := r.file(name, ".json")
	yamlPath := r.file(name, ".yaml")
	ymlPath := r.file(name, ".yml")

	if fileExists(protoPath) {
		if !fileExists(jsonPath) {
			return nil, fmt.Errorf("%w: %s has no %s.json records file", dataset.ErrNotFound, protoPath, name)
		}
		schema, err := os.ReadFile(protoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read proto schema: %w", err)
		}
		content, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read protobuf records: %w", err)
		}
		return r.buildDataset(name, dataset.FormatProtobuf, content, schema), nil
	}

	yamlExists, ymlExists, jsonExists := fileExists(yamlPath), fileExists(ymlPath), fileExists(jsonPath)
	if (yamlExists || ymlExists) && jsonExists {
		slog.Warn("Both YAML and JSON exist for dataset - using YAML (precedence rule)", "name", name)
	}

	var (
		path   string
		format dataset.Format
	)
	switch {
	case yamlExists:
		path, format = yamlPath, dataset.FormatYaml
	case ymlExists:
		path, format = ymlPath, dataset.FormatYaml
	case jsonExists:
		path, format = jsonPath, dataset.FormatJSON
	default:
		return nil, dataset.ErrNotFound
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return r.buildDataset(name, format, content, nil), nil
}

// List scans the directory for dataset files.
func (r *FileSystemRepository) List(ctx context.Context) ([]*dataset.Dataset, error) {
	entries, err := os.ReadDir(r.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*dataset.Dataset{}, nil
		}
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		switch ext {
		case ".proto", ".json", ".yaml", ".yml":
		default:
			continue // Not a dataset file
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if seen[name] || dataset.ValidateName(name) != nil {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]*dataset.Dataset, 0, len(names))
	for _, name := range names {
		// Reuse Get logic to read files and apply precedence
		ds, err := r.Get(ctx, name)
		if err != nil {
			slog.Warn("Skipping dataset file", "name", name, "error", err)
			continue
		}
		result = append(result, ds)
	}
	return result, nil
}

// Delete is not supported in read-only mode.
func (r *FileSystemRepository) Delete(ctx context.Context, name string) error {
	return fmt.Errorf("%w: remove the %s files from %s instead", dataset.ErrReadOnly, name, r.rootDir)
}

func (r *FileSystemRepository) file(name, ext string) string {
	return filepath.Join(r.rootDir, name+ext)
}

func (r *FileSystemRepository) buildDataset(name string, format dataset.Format, content, schema []byte) *dataset.Dataset {
	return &dataset.Dataset{
		ID:          fmt.Sprintf("%s-%s", dataset.SourceFilesystem, name),
		Name:        name,
		Format:      format,
		Source:      dataset.SourceFilesystem,
		Content:     content,
		Schema:      schema,
		Fingerprint: dataset.ComputeFingerprint(format, content, schema, ""),
		CreatedAt:   time.Now().UTC(), // Synthetic
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
