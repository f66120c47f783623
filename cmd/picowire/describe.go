package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// describeCmd lists loaded message types, or the fields of one type.
var describeCmd = &cobra.Command{
	Use:   "describe [message-type]",
	Short: "List loaded message types or the fields of one type",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			names := pw.ListMessages()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		msg, err := pw.GetRegistry().GetMessage(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("message %s\n", msg.Name)
		for _, f := range msg.Fields {
			line := fmt.Sprintf("  %s %s = %d", f.Type.PrimitiveType, f.Name, f.Number)
			if f.MaxLength > 0 {
				line += fmt.Sprintf(" [max_length = %d]", f.MaxLength)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
