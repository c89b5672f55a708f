package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "triagectl",
	Short: "triagectl - finding intake, dedup and ranking for the triage spreadsheet",
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
