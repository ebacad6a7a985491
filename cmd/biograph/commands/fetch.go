package commands

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/logger"
	"github.com/astraldata/biograph/osdr"
)

// FetchCmd pulls study file metadata from the OSDR API into the local store
var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch study file metadata from the OSDR API",
	Long: `Fetch study file listings from the NASA OSDR API and cache them in
the local data directory. The server watches that directory and rebuilds the
graph when the cache changes.

Publication records come from the separate metadata pipeline; place them in
the data directory as publications.json.`,
	RunE: runFetch,
}

var fetchStudy string

func init() {
	FetchCmd.Flags().StringVar(&fetchStudy, "study", "", "Fetch files for a single study id (e.g. OSD-37)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	log := logger.Logger
	store := osdr.NewStore(cfg.Data.Dir, log)
	client := osdr.NewClient(
		cfg.OSDR.BaseURL,
		cfg.OSDR.RequestsPerMinute,
		time.Duration(cfg.OSDR.TimeoutSeconds)*time.Second,
		log,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var studyIDs []string
	if fetchStudy != "" {
		studyIDs = []string{fetchStudy}
	} else {
		spinner, _ := pterm.DefaultSpinner.Start("Fetching study listing from OSDR...")
		studies, err := client.FetchStudies(ctx)
		if err != nil {
			spinner.Fail("Failed to fetch study listing")
			return errors.Wrap(err, "failed to fetch studies")
		}
		spinner.Success(fmt.Sprintf("Found %d studies", len(studies)))
		for _, study := range studies {
			studyIDs = append(studyIDs, study.StudyID)
		}
	}

	var files []osdr.FileRecord
	failed := 0
	spinner, _ := pterm.DefaultSpinner.Start("Fetching file listings...")
	for i, studyID := range studyIDs {
		if err := ctx.Err(); err != nil {
			spinner.Fail("Interrupted")
			return err
		}
		spinner.UpdateText(fmt.Sprintf("Fetching files for %s (%d/%d)...", studyID, i+1, len(studyIDs)))

		studyFiles, err := client.FetchStudyFiles(ctx, studyID)
		if err != nil {
			// One broken study should not abort a long crawl
			log.Warnw("Failed to fetch study files", "study_id", studyID, "error", err)
			failed++
			continue
		}
		files = append(files, studyFiles...)
	}
	spinner.Success(fmt.Sprintf("Fetched %d file records from %d studies", len(files), len(studyIDs)-failed))

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode file records")
	}
	if err := store.SaveFiles(data); err != nil {
		return errors.Wrap(err, "failed to save file records")
	}

	pterm.Info.Printf("Cached file records in %s\n", cfg.Data.Dir)
	if failed > 0 {
		pterm.Warning.Printf("%d studies failed to fetch; see logs\n", failed)
	}
	return nil
}
