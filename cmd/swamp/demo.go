package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swamp-sc/swamp/syncmem"
	"github.com/swamp-sc/swamp/tracing"
	"github.com/swamp-sc/swamp/transport/directtransport"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted write/ack/reset sequence against a device model.",
	Run: func(cmd *cobra.Command, _ []string) {
		sqlitePath, _ := cmd.Flags().GetString("trace-sqlite")
		csvPath, _ := cmd.Flags().GetString("trace-csv")

		runDemo(sqlitePath, csvPath)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("trace-sqlite", "",
		"Record transaction traces in a SQLite database at the given path")
	demoCmd.Flags().String("trace-csv", "",
		"Record transaction traces in a CSV file at the given path")
}

func buildDemoEngine(
	sqlitePath, csvPath string,
) (*syncmem.Comp, *directtransport.Comp) {
	link := directtransport.MakeBuilder().
		WithDeviceSize(64).
		Build("Link")

	builder := syncmem.MakeBuilder().
		WithTransport(link).
		WithMemorySize(64).
		WithTarget(link.Name())

	if sqlitePath != "" {
		writer := tracing.NewSQLiteTraceWriter(sqlitePath)
		writer.Init()
		builder = builder.WithTracer(tracing.NewDBTracer(writer))
	} else if csvPath != "" {
		writer := tracing.NewCSVTraceWriter(csvPath)
		writer.Init()
		builder = builder.WithTracer(tracing.NewDBTracer(writer))
	}

	return builder.Build("SyncMem"), link
}

func runDemo(sqlitePath, csvPath string) {
	engine, link := buildDemoEngine(sqlitePath, csvPath)

	fmt.Println("== optimistic writes ==")
	mustWrite(engine, 0x04, 0x0A, 0xFF)
	mustWrite(engine, 0x04, 0x03, 0x0F)
	mustWrite(engine, 0x10, 0x80, 0x80)
	printState(engine, 0x04, 0x10)

	fmt.Println("== responses delivered ==")
	if err := link.DeliverAll(); err != nil {
		fmt.Println("delivery error:", err)
	}
	printState(engine, 0x04, 0x10)

	fmt.Println("== write to a failing register ==")
	link.Device().FailAddress(0x20, "register is read-only")
	mustWrite(engine, 0x20, 0xFF, 0xFF)
	if err := link.DeliverAll(); err != nil {
		fmt.Println("delivery error:", err)
	}
	printState(engine, 0x20)

	fmt.Println("== device reset with a write in flight ==")
	mustWrite(engine, 0x08, 0x55, 0xFF)
	link.TriggerReset()
	printState(engine, 0x04, 0x08, 0x10)
	fmt.Printf("outstanding writes: %d\n", len(engine.OutstandingCommits()))
}

func mustWrite(engine *syncmem.Comp, address uint64, value, bitmask byte) {
	handle, err := engine.Write(address, value, bitmask)
	if err != nil {
		fmt.Printf("write 0x%02x: %v\n", address, err)
		return
	}

	fmt.Printf("write 0x%02x = 0x%02x (mask 0x%02x), transaction %s\n",
		address, value, bitmask, handle.ID)
}

func printState(engine *syncmem.Comp, addresses ...uint64) {
	for _, address := range addresses {
		cached, _ := engine.Read(address, false)
		committed, _ := engine.Read(address, true)
		fmt.Printf("  0x%02x: cache=0x%02x committed=0x%02x\n",
			address, cached, committed)
	}
}
