// Package buildinfo exposes version metadata injected at link time.
//
// Build with:
//
//	go build -ldflags "-X storyshare/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X storyshare/internal/buildinfo.buildDate=2026-09-01 \
//	  -X storyshare/internal/buildinfo.buildCommit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build metadata to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
