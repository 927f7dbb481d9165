// Command domcore-cabi hosts the domcore engine behind its C ABI surface.
// It does no I/O of its own: the ABI is consumed by a host language binding
// (typically linked in via cgo, or driven directly from another Go process
// for testing) that calls into the cabi package's exported functions against
// handles this process owns.
package main

import (
	"log/slog"
	"os"

	_ "github.com/whatwg-dom/domcore/cabi"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	slog.Info("domcore-cabi: engine ready")
	select {}
}
