package types

type (
	// DirectoryListing contains the immediate children of one directory,
	// partitioned into files and subdirectories. All paths are absolute.
	DirectoryListing struct {
		Files       []string `json:"files"`
		Directories []string `json:"directories"`
	}

	// RuleSet contains filter rules for a scan. It is the schema of the
	// rules file and the input to pathfilter.Compile.
	RuleSet struct {
		Extensions     []string `json:"extensions,omitempty" yaml:"extensions"`
		IgnorePatterns []string `json:"ignorePatterns,omitempty" yaml:"ignorePatterns"`
		SkipDirs       []string `json:"skipDirs,omitempty" yaml:"skipDirs"`
	}
)
