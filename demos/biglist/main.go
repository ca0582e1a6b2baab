// Demo: a million-row list in the terminal. The engine keeps only the rows
// near the viewport mounted; everything else is two padding spacers.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ayn2op/vlist"
	"github.com/ayn2op/vlist/tcellview"
)

const rows = 1_000_000

type demoSource struct{}

func (demoSource) Len() int { return rows }

func (demoSource) Item(i int) string {
	// Every 50th row is a long wrapped paragraph so item heights vary and
	// the average layout has something to estimate.
	if i%50 == 0 {
		return fmt.Sprintf("row %d: %s", i, strings.Repeat("lorem ipsum dolor sit amet ", 8))
	}
	return fmt.Sprintf("row %d", i)
}

func main() {
	// Stray writes to stderr would tear the terminal UI, so diagnostics go
	// to a file instead.
	logFile, err := os.Create("biglist.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	list := tcellview.NewList(demoSource{}).
		SetHideStrategy(vlist.HideUnmount)

	app := tcellview.NewApp(list)
	list.SetChangedFunc(app.Redraw)

	engine := vlist.NewEngine(vlist.StaticResolver(list)).
		SetMargins(10, 40).
		SetLayout(vlist.NewAverageLayout()).
		SetErrorFunc(func(err error) {
			logger.Error("engine failure", "err", err)
		})

	if err := engine.Start(); err != nil {
		log.Fatal(err)
	}
	defer engine.Stop()

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
