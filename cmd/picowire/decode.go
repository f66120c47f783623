package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	decodeIn  string
	decodeHex bool
)

// decodeCmd turns protobuf wire bytes back into a JSON document.
var decodeCmd = &cobra.Command{
	Use:   "decode <message-type>",
	Short: "Decode protobuf wire bytes into a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageType := args[0]

		var in io.Reader = os.Stdin
		if decodeIn != "" {
			f, err := os.Open(decodeIn)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()
			in = f
		}

		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if decodeHex {
			raw, err = hex.DecodeString(strings.TrimSpace(string(raw)))
			if err != nil {
				return fmt.Errorf("failed to decode hex input: %w", err)
			}
		}

		data, err := pw.Parse(raw, messageType)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", messageType, err)
		}

		logger.Debug().
			Str("message", messageType).
			Int("bytes", len(raw)).
			Msg("decoded message")

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	},
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeIn, "in", "i", "", "binary input file (default stdin)")
	decodeCmd.Flags().BoolVar(&decodeHex, "hex", false, "treat input as hex text")
	rootCmd.AddCommand(decodeCmd)
}
