package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Operator tooling for the AutoAssist portal: tables, members, documents",
}

func init() {
	rootCmd.AddCommand(createTablesCmd)
	rootCmd.AddCommand(seedMemberCmd)
	rootCmd.AddCommand(seedDocumentsCmd)
}
