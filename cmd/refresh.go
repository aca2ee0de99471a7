package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a fresh download of the languoid catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newLanguoidStore(newFetcher())

		table, err := st.Load(cmd.Context(), true)
		if err != nil {
			return err
		}

		path, err := st.CachePath()
		if err != nil {
			return err
		}
		fmt.Printf("Refreshed %d languoids into %s\n", table.Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
