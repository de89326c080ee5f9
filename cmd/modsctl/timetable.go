package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nthumods/mods-backend/internal/database"
	"github.com/nthumods/mods-backend/internal/exporter"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/timetable"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <token>...",
	Short: "Show the sessions a timeslot token expands to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOKEN\tDAY\tPERIODS\tTIME")
		for _, tok := range args {
			sessions, err := timetable.ParseTimeslot(tok)
			if err != nil {
				fmt.Fprintf(w, "%s\t-\t-\t%v\n", tok, err)
				continue
			}
			for _, s := range sessions {
				first, last := timetable.Periods[s.Start], timetable.Periods[s.End]
				fmt.Fprintf(w, "%s\t%s\t%s-%s\t%s-%s\n", tok, s.Day.Short(), first.Code, last.Code, first.Start, last.End)
			}
		}
		return w.Flush()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <share-url>",
	Short: "Report conflicts, duplicates and credits of a shared timetable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		semester, ids, ok := timetable.ParseShareURL(args[0])
		if !ok {
			return fmt.Errorf("%q is not a share link", args[0])
		}

		ctx := cmd.Context()
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		view, err := sharedTimetable(pool).SharedView(ctx, semester, ids, timetable.DefaultTheme)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Semester %s: %d courses, %d credits\n", semester, len(view.Courses), view.TotalCredits)
		for _, c := range view.Conflicts {
			fmt.Fprintf(out, "  conflict   %s %s (%s)\n", c.Course.RawID, c.Course.DisplayName(), c.Timeslot)
		}
		for _, id := range view.Duplicates {
			fmt.Fprintf(out, "  duplicate  %s\n", id)
		}
		for _, id := range view.Missing {
			fmt.Fprintf(out, "  unknown    %s\n", id)
		}
		if len(view.Conflicts)+len(view.Duplicates)+len(view.Missing) == 0 {
			fmt.Fprintln(out, "  no problems found")
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <share-url>",
	Short: "Render a shared timetable to an .ics or .xlsx file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		semester, ids, ok := timetable.ParseShareURL(args[0])
		if !ok {
			return fmt.Errorf("%q is not a share link", args[0])
		}
		if output == "" {
			output = "nthumods-" + semester + ".ics"
		}
		format, err := exportFormat(output)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		courses, missing, err := sharedTimetable(pool).CourseData(ctx, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			log.Warn().Strs("missing", missing).Msg("Skipping unknown courses")
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if format == ".xlsx" {
			err = exporter.GenerateWorkbook(courses, file)
		} else {
			err = writeCalendar(courses, semester, file)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d courses to %s\n", len(courses), output)
		return nil
	},
}

// exportFormat returns the lower-cased extension of output if it is one
// export can write.
func exportFormat(output string) (string, error) {
	ext := strings.ToLower(filepath.Ext(output))
	switch ext {
	case ".ics", ".xlsx":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported output type %q, use .ics or .xlsx", filepath.Ext(output))
}

func writeCalendar(courses []model.Course, semester string, file *os.File) error {
	loc, err := time.LoadLocation(cfg.CalendarZone)
	if err != nil {
		return err
	}
	start := cfg.SemesterStart
	return exporter.GenerateICS(courses, exporter.CalendarOptions{
		Name:          "NTHUMods " + semester,
		SemesterStart: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		Weeks:         cfg.SemesterWeeks,
		Location:      loc,
	}, file)
}

// sharedTimetable serves read-only views; it never touches a client store.
func sharedTimetable(pool *pgxpool.Pool) *service.TimetableService {
	return service.NewTimetableService(nil, repository.NewCourseRepository(pool), cfg.PublicBaseURL, log)
}

func init() {
	rootCmd.AddCommand(parseCmd, checkCmd, exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file (.ics or .xlsx), defaults to nthumods-<semester>.ics")
}
