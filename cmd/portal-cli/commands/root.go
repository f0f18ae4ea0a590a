package commands

import (
	"fmt"
	"os"
	"time"

	"cefetid-backend/lib/scrapers/cefetaluno"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	baseUrl   string
	cpaOrigin string
	session   string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "portal-cli",
	Short: "portal-cli talks to the CEFET/RJ student portal from the terminal.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseUrl, "base-url", cefetaluno.DefaultBaseUrl,
		"Base url of the student portal.",
	)
	rootCmd.PersistentFlags().StringVar(
		&cpaOrigin, "cpa-origin", cefetaluno.DefaultCpaOrigin,
		"Origin of the CPA survey system.",
	)
	rootCmd.PersistentFlags().StringVar(
		&session, "session", os.Getenv("PORTAL_SESSION"),
		"Portal session value, as printed by the login command.",
	)
	rootCmd.PersistentFlags().DurationVar(
		&timeout, "timeout", time.Second*30,
		"Timeout for each portal exchange.",
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scraperOptions() cefetaluno.ClientOptions {
	return cefetaluno.ClientOptions{
		BaseUrl:   baseUrl,
		CpaOrigin: cpaOrigin,
		Timeout:   timeout,
	}
}

func sessionClient() (*cefetaluno.SessionClient, error) {
	if session == "" {
		return nil, fmt.Errorf("no session given, run the login command first and pass --session (or set PORTAL_SESSION)")
	}
	return cefetaluno.NewSessionClient(cefetaluno.SessionOptions{
		BaseUrl: baseUrl,
		Timeout: timeout,
		Session: session,
	})
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
