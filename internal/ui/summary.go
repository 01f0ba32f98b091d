package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/torrentsink/internal/batch"
)

// FormatSummary renders the end-of-run report printed by the CLI
func FormatSummary(result *batch.Result) string {
	var sb strings.Builder

	verb := "Copied"
	if result.DryRun {
		verb = "Would copy"
	}

	copied := 0
	for _, op := range result.Operations {
		if op.Completed {
			copied++
		}
	}

	sb.WriteString(FormatStatusOK(fmt.Sprintf("%s %s torrents", verb, StatStyle.Render(fmt.Sprint(copied)))) + "\n")
	sb.WriteString(FormatStatusInfo(fmt.Sprintf("Torrent names: %d, media names: %d",
		len(result.TorrentNames), len(result.MediaNames))) + "\n")

	if n := result.SkipCount(batch.SkipNoMedia); n > 0 {
		sb.WriteString(FormatStatusInfo(fmt.Sprintf("%d torrents list no media file", n)) + "\n")
	}

	for _, skip := range result.Skipped {
		switch skip.Reason {
		case batch.SkipAmbiguous:
			sb.WriteString(FormatStatusWarn(fmt.Sprintf("%s: several media files, not renamed", filepath.Base(skip.Path))) + "\n")
		case batch.SkipDecode, batch.SkipCopy:
			sb.WriteString(FormatStatusFail(fmt.Sprintf("%s: %v", filepath.Base(skip.Path), skip.Err)) + "\n")
		}
	}

	return sb.String()
}

// FormatPlan lists every planned rename, one per line
func FormatPlan(result *batch.Result) string {
	var sb strings.Builder
	for _, op := range result.Operations {
		sb.WriteString(fmt.Sprintf("%s -> %s\n", filepath.Base(op.Source), filepath.Base(op.Destination)))
	}
	sb.WriteString(FormatSummary(result))
	return sb.String()
}
