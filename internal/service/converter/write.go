package converter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// WriteJSON writes v as indented JSON, the layout the dashboard datasets are published in.
func WriteJSON(path string, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("sonic.MarshalIndent: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}
