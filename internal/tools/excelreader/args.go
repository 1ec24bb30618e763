package excelreader

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/marcusholm/mcp-excel-reader/internal/excel"
)

// resolveFilePath extracts and resolves the file_path argument.
// Absolute paths are used directly (stdio mode); relative paths are
// resolved under the configured base directory with traversal rejected.
func resolveFilePath(args map[string]any, basePath string) (string, error) {
	raw, ok := args["file_path"].(string)
	if !ok || raw == "" {
		return "", &excel.ValidationError{
			Field:   "file_path",
			Value:   args["file_path"],
			Message: "file_path parameter is required",
		}
	}

	if filepath.IsAbs(raw) {
		return raw, nil
	}

	cleanPath := filepath.Clean(raw)
	if strings.Contains(cleanPath, "..") {
		return "", &excel.ValidationError{
			Field:   "file_path",
			Value:   raw,
			Message: "directory traversal not allowed",
		}
	}

	return filepath.Join(basePath, cleanPath), nil
}

// sheetIndexArg extracts the optional sheet_index argument. JSON
// decoding hands numbers over as float64; ints are accepted for
// direct callers.
func sheetIndexArg(args map[string]any) (int, bool, error) {
	val, exists := args["sheet_index"]
	if !exists || val == nil {
		return 0, false, nil
	}

	switch v := val.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false, &excel.ValidationError{
				Field:   "sheet_index",
				Value:   val,
				Message: "sheet_index must be a non-negative integer",
			}
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	default:
		return 0, false, &excel.ValidationError{
			Field:   "sheet_index",
			Value:   val,
			Message: "sheet_index must be a non-negative integer",
		}
	}
}
