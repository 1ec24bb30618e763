package excelreader

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/marcusholm/mcp-excel-reader/internal/excel"
)

// envelopeResult encodes the response envelope as indented JSON text
// content. The envelope controls key order, so repeated reads of an
// unmodified file produce byte-identical output.
func envelopeResult(env *excel.Envelope) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult converts any failure into an MCP error result with one
// short sentence naming the offending input. Nothing propagates to the
// protocol host as an unhandled fault.
func errorResult(logger *logrus.Logger, operation string, err error) *mcp.CallToolResult {
	logger.WithError(err).WithField("tool", operation).Debug("Excel read failed")
	return mcp.NewToolResultError(errorMessage(err))
}

func errorMessage(err error) string {
	var notFound *excel.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("Excel file not found: %s", notFound.Path)
	}

	var sheetErr *excel.SheetError
	if errors.As(err, &sheetErr) {
		if errors.Is(sheetErr.Cause, excel.ErrSheetNotFound) {
			return fmt.Sprintf("Sheet not found: %s", sheetErr.SheetName)
		}
		return fmt.Sprintf("Error reading sheet '%s': %v", sheetErr.SheetName, sheetErr.Cause)
	}

	var valErr *excel.ValidationError
	if errors.As(err, &valErr) {
		return fmt.Sprintf("Invalid %s: %s", valErr.Field, valErr.Message)
	}

	var wbErr *excel.WorkbookError
	if errors.As(err, &wbErr) {
		return fmt.Sprintf("Error reading Excel file %s: %v", wbErr.Path, wbErr.Cause)
	}

	return fmt.Sprintf("Error reading Excel file: %v", err)
}
