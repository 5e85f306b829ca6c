package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	deepaccess "github.com/Grinnz/Data-DeepAccess"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deepaccess",
	Short: "Read and write deep values in JSON and YAML documents",
	Long: `deepaccess resolves dotted paths ("users.3.name", "a[2]") against a
JSON or YAML document and checks, reads or writes the value at that path,
creating missing intermediate containers on writes.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().String("format", "", "document format: json or yaml (default: by file extension)")
}

// readDocument loads the raw document and resolves its format from the
// --format flag or the file extension.
func readDocument(cmd *cobra.Command, file string) ([]byte, string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, "", err
	}
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	if format != "json" && format != "yaml" {
		return nil, "", fmt.Errorf("unknown format %q", format)
	}
	return data, format, nil
}

// decodeRoot decodes the document into a traversable root.
func decodeRoot(data []byte, format string) (any, error) {
	if format == "yaml" {
		return deepaccess.FromYAML(data)
	}
	return deepaccess.FromJSON(data)
}

// compilePathArgs parses the path string into the variadic form the
// deepaccess operations take.
func compilePathArgs(path string) ([]any, error) {
	segs, err := deepaccess.ParsePath(path)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(segs))
	for i, seg := range segs {
		args[i] = seg
	}
	return args, nil
}
