package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	encodeIn  string
	encodeOut string
)

// encodeCmd turns a JSON document into protobuf wire bytes.
var encodeCmd = &cobra.Command{
	Use:   "encode <message-type>",
	Short: "Encode a JSON document into protobuf wire bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageType := args[0]

		var in io.Reader = os.Stdin
		if encodeIn != "" {
			f, err := os.Open(encodeIn)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()
			in = f
		}

		var data map[string]interface{}
		if err := json.NewDecoder(in).Decode(&data); err != nil {
			return fmt.Errorf("failed to parse JSON input: %w", err)
		}

		storage := make([]byte, cfg.BufferSize)
		encoded, err := pw.Marshal(data, messageType, storage)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", messageType, err)
		}

		logger.Debug().
			Str("message", messageType).
			Int("bytes", len(encoded)).
			Int("capacity", cfg.BufferSize).
			Msg("encoded message")

		if encodeOut == "" {
			fmt.Println(hex.EncodeToString(encoded))
			return nil
		}
		if err := os.WriteFile(encodeOut, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeIn, "in", "i", "", "JSON input file (default stdin)")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "output file (default hex on stdout)")
	rootCmd.AddCommand(encodeCmd)
}
