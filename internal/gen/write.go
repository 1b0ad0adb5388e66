package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifacts writes the declarations buffer to {basename}.h and
// the definitions buffer to {basename}.c under dir, fully overwriting
// any previous artifacts. There is no partial-write recovery: on any
// error the run's outputs must be treated as unusable and the run
// repeated.
func WriteArtifacts(dir string, c *Context) error {
	headerPath := filepath.Join(dir, c.Basename()+".h")
	if parent := filepath.Dir(headerPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", parent, err)
		}
	}

	if err := os.WriteFile(headerPath, c.Header(), 0o644); err != nil {
		return fmt.Errorf("writing declarations artifact %s: %w", headerPath, err)
	}

	bodyPath := filepath.Join(dir, c.Basename()+".c")
	if err := os.WriteFile(bodyPath, c.Body(), 0o644); err != nil {
		return fmt.Errorf("writing definitions artifact %s: %w", bodyPath, err)
	}

	return nil
}
