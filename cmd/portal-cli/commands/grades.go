package commands

import (
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gradesCmd)
}

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Lists the grade entries of every semester, newest first.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := sessionClient()
		if err != nil {
			log.Fatal(err)
		}
		semesters, err := client.Grades(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Semestre", "Disciplina", "Situação", "Turma"})
		for _, semester := range semesters {
			for _, entry := range semester.Entries {
				t.AppendRow(table.Row{
					semester.Label, entry.Discipline, entry.Status, entry.ClassSection,
				})
			}
		}
		t.Render()
	},
}
