package commands

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"cefetid-backend/lib/scrapers/cefetaluno"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Logs into the portal and prints the session value.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(os.Stderr, "password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal(err)
		}
		password = strings.TrimRight(password, "\r\n")

		client, err := cefetaluno.NewClient(scraperOptions())
		if err != nil {
			log.Fatal(err)
		}
		result, err := client.Login(cmd.Context(), args[0], password)
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Matrícula", "Session"})
		t.AppendRow(table.Row{result.Student.Name, result.Student.StudentId, result.Session})
		t.Render()
	},
}
