package main

import (
	"fmt"
	"os"

	deepaccess "github.com/Grinnz/Data-DeepAccess"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Print the value at a path",
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
		v, ok, err := deepaccess.Get(root, pathArgs...)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "no value at %s\n", args[1])
			os.Exit(1)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
