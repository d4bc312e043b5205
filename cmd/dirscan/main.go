// Package main implements the dirscan directory tree scanner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/scanwalk/dirscan/internal/output"
	"github.com/scanwalk/dirscan/internal/pathfilter"
	"github.com/scanwalk/dirscan/internal/types"
	"github.com/scanwalk/dirscan/internal/walker"
)

type scanOptions struct {
	extensions []string
	ignore     []string
	skipDirs   []string
	rulesFile  string
	failFast   bool
	asJSON     bool
	verbose    bool
}

func main() {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "dirscan [root]",
		Short: "Map a directory tree to the files in it",
		Long: `dirscan recursively enumerates a directory tree and prints a mapping
from each directory to the files within it. Extension, ignore, and
skip rules choose which directories and files are recorded; a skipped
directory is still descended into, so its subdirectories can still
appear in the result.`,
		Example: `dirscan --ext .c --skip-dir '**/examples' ./src`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(&opts, args)
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVar(&opts.extensions, "ext", nil, "file extension to keep (repeatable)")
	fs.StringArrayVar(&opts.ignore, "ignore", nil, "glob pattern of files to drop (repeatable)")
	fs.StringArrayVar(&opts.skipDirs, "skip-dir", nil, "glob pattern of directories to leave out of the result (repeatable)")
	fs.StringVar(&opts.rulesFile, "rules", "", "YAML rules file (flags append to its rules)")
	fs.BoolVar(&opts.failFast, "fail-fast", false, "abort on the first unreadable directory")
	fs.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	fs.BoolVar(&opts.verbose, "verbose", false, "print a scan summary")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newServeCommand())

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func runScan(opts *scanOptions, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	output.SetVerbose(opts.verbose)

	rules, err := loadRules(opts.rulesFile)
	if err != nil {
		return err
	}
	rules.Extensions = append(rules.Extensions, opts.extensions...)
	rules.IgnorePatterns = append(rules.IgnorePatterns, opts.ignore...)
	rules.SkipDirs = append(rules.SkipDirs, opts.skipDirs...)

	skipped := 0
	svc := walker.New(walker.Options{
		FileFilter: fileFilter(rules),
		DirFilter:  dirFilter(rules),
		FailFast:   opts.failFast,
		OnSkip: func(path string, err error) {
			skipped++
			klog.V(1).Infof("Skipping unreadable directory %s: %v", path, err)
		},
	})

	result, err := svc.Walk(root)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		output.Scan(result)
	}

	if opts.verbose {
		files := 0
		for _, kept := range result {
			files += len(kept)
		}
		output.Summary(len(result), files, skipped)
	}

	return nil
}

// loadRules reads a RuleSet from a YAML file. An empty path yields an
// empty rule set.
func loadRules(path string) (types.RuleSet, error) {
	var rules types.RuleSet
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return rules, nil
}

// fileFilter compiles the file rules into a walker filter, or nil when
// there are none, so the walker skips the filtering pass entirely.
func fileFilter(rules types.RuleSet) walker.Filter {
	r := pathfilter.Files(rules)
	if r.Empty() {
		return nil
	}
	return walker.FilterFunc(r.IsAllowed)
}

// dirFilter compiles the directory rules into a walker filter, or nil
// when there are none.
func dirFilter(rules types.RuleSet) walker.Filter {
	r := pathfilter.Dirs(rules)
	if r.Empty() {
		return nil
	}
	return walker.FilterFunc(r.IsAllowed)
}
