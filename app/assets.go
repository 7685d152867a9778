package app

import (
	"os"
	"path/filepath"

	"board-customizer/customizer"
)

// missingAssets returns the fallback assets that are absent from dir
func missingAssets(dir string) []string {
	var missing []string
	for _, asset := range customizer.StaticAssets() {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(asset)))
		if err != nil || info.IsDir() {
			missing = append(missing, asset)
		}
	}
	return missing
}
