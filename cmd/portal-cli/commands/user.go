package commands

import (
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Shows the identity and profile of the logged-in student.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := sessionClient()
		if err != nil {
			log.Fatal(err)
		}

		identity, err := client.Identity(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		profile, err := client.Profile(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		summary, err := client.ReportSummary(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"Name", identity.Name},
			{"Matrícula", identity.StudentId},
			{"CPF", profile.Cpf},
			{"Curso", summary.CourseLabel},
			{"Campus", profile.Campus},
			{"Período atual", summary.CurrentPeriod},
		})
		t.Render()
	},
}
