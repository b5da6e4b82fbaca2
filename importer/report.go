package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/s0up4200/arrsync/arr"
)

// describeEntry names the library items a file entry points at.
func describeEntry(entry arr.FileEntry) string {
	switch e := entry.(type) {
	case arr.SeriesFileEntry:
		ids := make([]string, 0, len(e.EpisodeIDs))
		for _, id := range e.EpisodeIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		return fmt.Sprintf("series %d, episodes %s", e.SeriesID, strings.Join(ids, ","))
	case arr.MovieFileEntry:
		return fmt.Sprintf("movie %d", e.MovieID)
	default:
		return entry.FilePath()
	}
}

// WriteReport renders the per-item outcome of a run as a table.
func WriteReport(w io.Writer, result *Result) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Folder", "Decision", "Detail", "Cleanup"})

	for _, item := range result.Items {
		detail := item.Detail
		if item.Err != nil {
			detail = item.Err.Error()
		}
		tw.AppendRow(table.Row{
			item.Candidate.FolderName,
			item.Decision.String(),
			detail,
			cleanupSummary(item),
		})
	}

	tw.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d accepted", result.Accepted),
		fmt.Sprintf("%d rejected", result.Rejected),
		fmt.Sprintf("%d deleted", result.FilesDeleted),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60},
		{Number: 4, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func cleanupSummary(item ItemResult) string {
	if item.Decision == Accepted {
		return ""
	}
	if item.Cleanup.Folder == FolderUntouched {
		return string(item.Cleanup.Action)
	}
	return string(item.Cleanup.Action) + ", " + string(item.Cleanup.Folder)
}
