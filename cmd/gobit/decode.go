package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/bencode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <bencoded string>",
	Short: "Parse and pretty-print a bencoded value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, _, err := bencode.Decode([]byte(args[0]), 0)
		if err != nil {
			return err
		}
		fmt.Println(bencode.Display(value))
		return nil
	},
}
