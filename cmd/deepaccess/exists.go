package main

import (
	"fmt"
	"os"

	deepaccess "github.com/Grinnz/Data-DeepAccess"
	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists <file> <path>",
	Short: "Report whether a value exists at a path",
	Long:  `Prints true or false. The exit code is 0 when the path exists and 1 when it does not.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, format, err := readDocument(cmd, args[0])
		if err != nil {
			return err
		}
		root, err := decodeRoot(data, format)
		if err != nil {
			return err
		}
		pathArgs, err := compilePathArgs(args[1])
		if err != nil {
			return err
		}
		found, err := deepaccess.Exists(root, pathArgs...)
		if err != nil {
			return err
		}
		fmt.Println(found)
		if !found {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}
