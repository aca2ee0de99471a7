package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <name> <glottocode>",
	Short: "Verify a language name against the authoritative record for a glottocode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, id := args[0], args[1]

		v := newVerifier(newFetcher())
		ok, err := v.Verify(cmd.Context(), name, id)
		if err != nil {
			return err
		}

		if ok {
			fmt.Printf("%s matches %s\n", name, id)
		} else {
			fmt.Printf("%s does not match %s\n", name, id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
