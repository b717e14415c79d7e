package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haiphan2000/trendbot/internal/backtest"
)

// WriteResultJSON writes a result to path as indented JSON, creating parent
// directories as needed. The JSON shape is the wire contract reporting
// consumers parse.
func WriteResultJSON(result *backtest.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// PrintResultJSON prints a result as indented JSON to stdout.
func PrintResultJSON(result *backtest.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
