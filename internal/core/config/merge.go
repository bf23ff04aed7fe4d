package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadMerged reads YAML config files and merges them in declaration order.
// Later files override earlier files for the same keys.
func loadMerged(files []string) (map[string]any, error) {
	merged := make(map[string]any)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", file, err)
		}

		var values map[string]any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", file, err)
		}

		mergeMaps(merged, values)
	}

	return merged, nil
}

// mergeMaps recursively merges src into dst.
// Nested maps are merged, while scalar and non-map values are replaced.
func mergeMaps(dst, src map[string]any) {
	if src == nil {
		return
	}

	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		if !srcIsMap {
			dst[key] = srcVal
			continue
		}

		dstMap, dstIsMap := dst[key].(map[string]any)
		if !dstIsMap {
			dst[key] = srcMap
			continue
		}

		mergeMaps(dstMap, srcMap)
	}
}
