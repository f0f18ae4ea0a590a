package commands

import (
	"fmt"
	"log"

	"cefetid-backend/lib/scrapers/cefetaluno"

	"github.com/spf13/cobra"
)

func init() {
	cpaCmd.AddCommand(cpaStatusCmd)
	cpaCmd.AddCommand(cpaSubmitCmd)
	rootCmd.AddCommand(cpaCmd)
}

var cpaCmd = &cobra.Command{
	Use:   "cpa",
	Short: "Interacts with the CPA survey system that gates logins during evaluation periods.",
}

var cpaStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Reports whether logins are currently diverted to the CPA system.",
	Run: func(cmd *cobra.Command, args []string) {
		under := cefetaluno.CheckCpaStatus(cmd.Context(), scraperOptions())
		fmt.Println("under cpa:", under)
	},
}

var cpaSubmitCmd = &cobra.Command{
	Use:   "submit <cpf>",
	Short: "Submits a CPF to the CPA system and prints the continuation link.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		link, err := cefetaluno.SubmitCpaId(cmd.Context(), scraperOptions(), args[0])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(link)
	},
}
