package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scanwalk/dirscan/internal/types"
	"github.com/scanwalk/dirscan/internal/walker"
)

func handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	path, err := resolveUnderRoot(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	listing, err := listerService.List(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	return nil, ListOutput{
		Path:        path,
		Files:       nonNil(listing.Files),
		Directories: nonNil(listing.Directories),
	}, nil
}

func handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	path, err := resolveUnderRoot(input.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	rules := types.RuleSet{
		Extensions:     input.Extensions,
		IgnorePatterns: input.IgnorePatterns,
		SkipDirs:       input.SkipDirs,
	}

	var skipped []string
	svc := walker.New(walker.Options{
		FileFilter: fileFilter(rules),
		DirFilter:  dirFilter(rules),
		OnSkip: func(dir string, err error) {
			skipped = append(skipped, dir)
		},
	})

	result, err := svc.Walk(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	return nil, ScanOutput{
		Root:        path,
		Directories: result,
		Skipped:     skipped,
	}, nil
}

// resolveUnderRoot resolves a relative path within the serve root and
// rejects traversal outside it.
func resolveUnderRoot(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	absPath, err := filepath.Abs(filepath.Join(serveRoot, relativePath))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(serveRoot, absPath)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	return absPath, nil
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
