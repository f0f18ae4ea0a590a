package commands

import (
	"fmt"
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <matricula>",
	Short: "Extracts the discipline names and campus from the timetable PDF.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := sessionClient()
		if err != nil {
			log.Fatal(err)
		}
		schedule, err := client.Schedule(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Disciplina"})
		for _, discipline := range schedule.Disciplines {
			t.AppendRow(table.Row{discipline})
		}
		t.Render()

		if schedule.Campus != "" {
			fmt.Println("campus:", schedule.Campus)
		}
	},
}
