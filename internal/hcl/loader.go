package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/uibridge/internal/config"
	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the descriptor loading process. It is agnostic to the
// origin of the paths and merges blocks from every file it finds.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered descriptor files.", "count", len(files))

	parser := hclparse.NewParser()
	serverSeen := ""

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse descriptor file %s: %w", file, diags)
		}

		var root schema.Descriptor
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode descriptor file %s: %w", file, diags)
		}

		if root.Server != nil {
			if serverSeen != "" {
				return nil, nil, fmt.Errorf("duplicate server block: declared in %s and %s", serverSeen, file)
			}
			serverSeen = file
			if err := l.translateServer(root.Server, model.Server); err != nil {
				return nil, nil, fmt.Errorf("invalid server block in %s: %w", file, err)
			}
		}

		for _, u := range root.UIs {
			if _, exists := model.UIs[u.Name]; exists {
				return nil, nil, fmt.Errorf("duplicate ui block %q in %s", u.Name, file)
			}
			def, err := l.translateUI(u)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid ui block %q in %s: %w", u.Name, file, err)
			}
			model.UIs[def.Name] = def
		}

		logger.Debug("Loaded descriptor file.", "file", file, "uis", len(root.UIs))
	}

	logger.Info("Descriptor loading complete.", "uis", len(model.UIs))
	return model, NewConverter(), nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					if _, wasSeen := seen[p]; !wasSeen {
						allFiles = append(allFiles, p)
						seen[p] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
