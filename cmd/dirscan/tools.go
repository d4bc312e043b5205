package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// ListInput contains parameters for listing one directory.
	ListInput struct {
		Path string `json:"path,omitempty" jsonschema:"Directory path relative to the serve root (default: the root itself)"`
	}

	// ListOutput contains one directory's children.
	ListOutput struct {
		Path        string   `json:"path"`
		Files       []string `json:"files"`
		Directories []string `json:"directories"`
	}

	// ScanInput contains parameters for scanning a tree.
	ScanInput struct {
		Path           string   `json:"path,omitempty" jsonschema:"Directory path relative to the serve root (default: the root itself)"`
		Extensions     []string `json:"extensions,omitempty" jsonschema:"File extensions to keep (e.g. .c); empty keeps all files"`
		IgnorePatterns []string `json:"ignorePatterns,omitempty" jsonschema:"Glob patterns of files to drop"`
		SkipDirs       []string `json:"skipDirs,omitempty" jsonschema:"Glob patterns of directories to leave out of the result"`
	}

	// ScanOutput maps each recorded directory to its retained files.
	ScanOutput struct {
		Root        string              `json:"root"`
		Directories map[string][]string `json:"directories"`
		Skipped     []string            `json:"skipped,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list",
		Description: "List the immediate files and subdirectories of one directory under the serve root.",
	}, handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "Recursively map a directory tree to the files in it. Extension, ignore, and skip rules choose what is recorded; a skipped directory is still descended into. Unreadable subdirectories are skipped and reported.",
	}, handleScan)
}
