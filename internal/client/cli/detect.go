package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Detect uploads a plant image for disease detection and prints the model's
// verdict. The result document varies by model version, so it is shown as
// indented JSON rather than forced into a struct.
func (a *App) Detect(ctx context.Context, path string) error {
	return a.gate.Allow(func() error {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot open %s: %v\n", path, err)
			return err
		}
		defer f.Close()

		result, err := a.api.DetectDisease(ctx, filepath.Base(path), f)
		if err != nil {
			a.printError(err)
			return err
		}

		var buf bytes.Buffer
		if json.Indent(&buf, result, "", "  ") == nil {
			fmt.Fprintln(a.out, buf.String())
		} else {
			fmt.Fprintln(a.out, string(result))
		}
		return nil
	})
}
