package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
)

var processCmd = &cobra.Command{
	Use:   "process <payload.json>",
	Short: "Process a single submission payload from a file",
	Long:  "Runs one saved payload (Elfsight field array or flat test object) through the full lead workflow and prints the result. Useful for replaying a failed delivery.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read payload file")
		}

		sub, err := form.Parse(payload)
		if err != nil {
			return err
		}

		creator, err := newCreator()
		if err != nil {
			return err
		}

		result, createErr := creator.Create(cmd.Context(), sub)

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode result")
		}
		fmt.Println(string(out))

		return createErr
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
