package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/swamp-sc/swamp/monitoring"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Serve the state of a demo engine over HTTP.",
	Run: func(cmd *cobra.Command, _ []string) {
		port, _ := cmd.Flags().GetInt("port")
		noBrowser, _ := cmd.Flags().GetBool("no-browser")

		runMonitor(port, noBrowser)
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().Int("port", 0,
		"Port of the monitoring server, or SWAMP_MONITOR_PORT; "+
			"a random port is picked when unset")
	monitorCmd.Flags().Bool("no-browser", false,
		"Do not open the dashboard in a browser")
}

func runMonitor(port int, noBrowser bool) {
	_ = godotenv.Load()

	if port == 0 {
		if env, ok := os.LookupEnv("SWAMP_MONITOR_PORT"); ok {
			if parsed, err := strconv.Atoi(env); err == nil {
				port = parsed
			}
		}
	}

	engine, link := buildDemoEngine("", "")
	mustWrite(engine, 0x04, 0x0A, 0xFF)
	mustWrite(engine, 0x10, 0x80, 0x80)
	if err := link.DeliverAll(); err != nil {
		panic(err)
	}
	mustWrite(engine, 0x08, 0x55, 0xFF)

	monitor := monitoring.NewMonitor()
	if port != 0 {
		monitor = monitor.WithPortNumber(port)
	}
	if noBrowser {
		monitor = monitor.WithoutBrowser()
	}
	monitor.RegisterEngine(engine)
	monitor.StartServer()

	select {}
}
