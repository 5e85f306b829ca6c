package main

import (
	"fmt"

	deepaccess "github.com/Grinnz/Data-DeepAccess"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <file> <path> <value>",
	Short: "Write a value at a path and print the updated document",
	Long: `Stores the value at the path, creating missing intermediate containers,
and prints the re-encoded document to stdout. The value is decoded as JSON
unless --raw is given, so "42" stores a number and "\"42\"" a string.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, format, err := readDocument(cmd, args[0])
		if err != nil {
			return err
		}

		var value any = args[2]
		if raw, _ := cmd.Flags().GetBool("raw"); !raw {
			if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
				return fmt.Errorf("value is not valid JSON (use --raw for a literal string): %w", err)
			}
		}

		var out []byte
		if format == "yaml" {
			out, err = deepaccess.SetYAML(data, args[1], value)
		} else {
			out, err = deepaccess.SetJSON(data, args[1], value)
		}
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		if format == "json" {
			fmt.Println()
		}
		return nil
	},
}

func init() {
	setCmd.Flags().Bool("raw", false, "store the value as a literal string instead of decoding JSON")
	rootCmd.AddCommand(setCmd)
}
