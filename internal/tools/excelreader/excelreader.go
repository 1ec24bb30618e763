package excelreader

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/marcusholm/mcp-excel-reader/internal/config"
	"github.com/marcusholm/mcp-excel-reader/internal/excel"
	"github.com/marcusholm/mcp-excel-reader/internal/registry"
	"github.com/marcusholm/mcp-excel-reader/internal/tools"
)

// RegisterAll registers the three Excel reading tools.
func RegisterAll(reg *registry.Registry, cfg *config.Config) {
	reg.Register(&ReadExcelTool{basePath: cfg.FilesBasePath})
	reg.Register(&ReadSheetByNameTool{basePath: cfg.FilesBasePath})
	reg.Register(&ReadSheetByIndexTool{basePath: cfg.FilesBasePath})
}

// ReadExcelTool reads every sheet of a workbook.
type ReadExcelTool struct {
	basePath string
}

// Definition returns the tool's definition for MCP registration
func (t *ReadExcelTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_excel",
		mcp.WithDescription("Read content from Excel (xlsx) files. Returns every sheet as rows of cell strings, keyed by sheet name."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the Excel file"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute executes the read_excel tool
func (t *ReadExcelTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	path, err := resolveFilePath(args, t.basePath)
	if err != nil {
		return errorResult(logger, "read_excel", err), nil
	}

	logger.WithFields(logrus.Fields{
		"tool":      "read_excel",
		"file_path": path,
	}).Info("Reading workbook")

	wb, err := excel.OpenWorkbook(path)
	if err != nil {
		return errorResult(logger, "read_excel", err), nil
	}
	defer closeWorkbook(logger, wb)

	env, err := excel.ReadAllSheets(wb)
	if err != nil {
		return errorResult(logger, "read_excel", err), nil
	}

	return envelopeResult(env)
}

// ProvideExtendedInfo provides detailed usage information for the read_excel tool
func (t *ReadExcelTool) ProvideExtendedInfo() *tools.ExtendedHelp {
	return &tools.ExtendedHelp{
		Examples: []tools.ToolExample{
			{
				Description: "Read a whole workbook",
				Arguments: map[string]any{
					"file_path": "/path/to/report.xlsx",
				},
				ExpectedResult: `{"Sheet1": [["Header1","Header2"],["Value1",""]], "Sheet2": [...]} - one entry per sheet, in workbook order.`,
			},
		},
		CommonPatterns: []string{
			"Every cell is rendered as a string: numbers as plain decimals, booleans as TRUE/FALSE, empty cells as \"\"",
			"Rows are padded so every row of a sheet has the same number of columns",
			"Relative file paths resolve under EXCEL_FILES_PATH; absolute paths are used as-is",
		},
		WhenToUse:    "Extracting tabular data from xlsx files for further processing, when all sheets are needed at once.",
		WhenNotToUse: "For a single sheet, prefer read_excel_by_sheet_name or read_excel_by_sheet_index to keep the response small. This server never writes or formats spreadsheets.",
	}
}

// ReadSheetByNameTool reads one sheet selected by name.
type ReadSheetByNameTool struct {
	basePath string
}

// Definition returns the tool's definition for MCP registration
func (t *ReadSheetByNameTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_excel_by_sheet_name",
		mcp.WithDescription("Read one sheet of an Excel (xlsx) file selected by its name. Without a sheet_name the first sheet is read."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the Excel file"),
		),
		mcp.WithString("sheet_name",
			mcp.Description("Name of the sheet to read (exact match). Defaults to the first sheet."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute executes the read_excel_by_sheet_name tool
func (t *ReadSheetByNameTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	path, err := resolveFilePath(args, t.basePath)
	if err != nil {
		return errorResult(logger, "read_excel_by_sheet_name", err), nil
	}

	selector := excel.SelectDefault()
	sheetName, _ := args["sheet_name"].(string)
	if sheetName != "" {
		selector = excel.SelectByName(sheetName)
	}

	logger.WithFields(logrus.Fields{
		"tool":       "read_excel_by_sheet_name",
		"file_path":  path,
		"sheet_name": sheetName,
	}).Info("Reading sheet by name")

	return readSingleSheet(logger, "read_excel_by_sheet_name", path, selector)
}

// ProvideExtendedInfo provides detailed usage information
func (t *ReadSheetByNameTool) ProvideExtendedInfo() *tools.ExtendedHelp {
	return &tools.ExtendedHelp{
		Examples: []tools.ToolExample{
			{
				Description: "Read the Sales sheet",
				Arguments: map[string]any{
					"file_path":  "/path/to/report.xlsx",
					"sheet_name": "Sales",
				},
				ExpectedResult: `{"Sales": [["Product","Revenue"],["Widget","15000"]]}`,
			},
		},
		CommonPatterns: []string{
			"Sheet names match exactly and case-sensitively",
			"Omit sheet_name to read the first sheet",
		},
		WhenToUse: "Extracting one known sheet from a workbook without transferring the rest.",
	}
}

// ReadSheetByIndexTool reads one sheet selected by 0-based position.
type ReadSheetByIndexTool struct {
	basePath string
}

// Definition returns the tool's definition for MCP registration
func (t *ReadSheetByIndexTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"read_excel_by_sheet_index",
		mcp.WithDescription("Read one sheet of an Excel (xlsx) file selected by its 0-based position in the workbook. Without a sheet_index the first sheet is read."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the Excel file"),
		),
		mcp.WithNumber("sheet_index",
			mcp.Description("0-based position of the sheet to read. Defaults to 0."),
			mcp.Min(0),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute executes the read_excel_by_sheet_index tool
func (t *ReadSheetByIndexTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	path, err := resolveFilePath(args, t.basePath)
	if err != nil {
		return errorResult(logger, "read_excel_by_sheet_index", err), nil
	}

	selector := excel.SelectDefault()
	if index, ok, err := sheetIndexArg(args); err != nil {
		return errorResult(logger, "read_excel_by_sheet_index", err), nil
	} else if ok {
		selector = excel.SelectByIndex(index)
	}

	logger.WithFields(logrus.Fields{
		"tool":      "read_excel_by_sheet_index",
		"file_path": path,
	}).Info("Reading sheet by index")

	return readSingleSheet(logger, "read_excel_by_sheet_index", path, selector)
}

// ProvideExtendedInfo provides detailed usage information
func (t *ReadSheetByIndexTool) ProvideExtendedInfo() *tools.ExtendedHelp {
	return &tools.ExtendedHelp{
		Examples: []tools.ToolExample{
			{
				Description: "Read the second sheet",
				Arguments: map[string]any{
					"file_path":   "/path/to/report.xlsx",
					"sheet_index": 1,
				},
				ExpectedResult: "The result is keyed by the sheet's actual name, not its index.",
			},
		},
		CommonPatterns: []string{
			"Indexes are 0-based and follow workbook sheet order",
			"An out-of-range index reports the valid range, e.g. [0,2)",
		},
		WhenToUse: "Reading positionally from workbooks whose sheet names are unknown or unstable.",
	}
}

// readSingleSheet resolves one sheet and wraps it in a single-entry
// envelope keyed by the sheet's own name.
func readSingleSheet(logger *logrus.Logger, operation, path string, selector excel.Selector) (*mcp.CallToolResult, error) {
	wb, err := excel.OpenWorkbook(path)
	if err != nil {
		return errorResult(logger, operation, err), nil
	}
	defer closeWorkbook(logger, wb)

	name, grid, err := excel.ReadSheet(wb, selector)
	if err != nil {
		return errorResult(logger, operation, err), nil
	}

	env := excel.NewEnvelope()
	env.Add(name, grid)
	return envelopeResult(env)
}

func closeWorkbook(logger *logrus.Logger, wb *excel.Workbook) {
	if err := wb.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close workbook")
	}
}
