package xccover

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/xccover/pkg/dbclient"
	"github.com/Azure/xccover/pkg/report"
	"github.com/sirupsen/logrus"
)

// calculateCoverage calculate coverage proportion
func calculateCoverage(covered int64, executable int64) float64 {
	if executable == 0 {
		return 0
	}
	return float64(covered) / float64(executable) * 100
}

// revision identifies the source the coverage was collected from.
type revision struct {
	commitID string
	branch   string
}

// coverageRows flattens the summary into overall, target and file rows.
func coverageRows(summary *report.Summary, rev revision, now time.Time) []*dbclient.Data {
	rows := []*dbclient.Data{
		{
			PreciseTimestamp: now,
			Scope:            dbclient.OverallScope,
			ExecutableLines:  int64(summary.ExecutableLines),
			CoveredLines:     int64(summary.CoveredLines),
			Coverage:         summary.CoveragePercent,
			CommitID:         rev.commitID,
			Branch:           rev.branch,
		},
	}

	for _, target := range summary.Targets {
		rows = append(rows, &dbclient.Data{
			PreciseTimestamp: now,
			Scope:            dbclient.TargetScope,
			Target:           target.Name,
			ExecutableLines:  int64(target.ExecutableLines),
			CoveredLines:     int64(target.CoveredLines),
			Coverage:         target.LineCoverage * 100,
			CommitID:         rev.commitID,
			Branch:           rev.branch,
		})

		for _, file := range target.Files {
			filePath := file.Path
			if filePath == "" {
				filePath = file.Name
			}
			rows = append(rows, &dbclient.Data{
				PreciseTimestamp: now,
				Scope:            dbclient.FileScope,
				Target:           target.Name,
				FilePath:         filePath,
				ExecutableLines:  int64(file.ExecutableLines),
				CoveredLines:     int64(file.CoveredLines),
				Coverage:         file.LineCoverage * 100,
				CommitID:         rev.commitID,
				Branch:           rev.branch,
			})
		}
	}

	return rows
}

// store send all coverage results to db store
func store(ctx context.Context, dbClient dbclient.DbClient, summary *report.Summary, rev revision) error {
	now := time.Now().UTC()
	for _, row := range coverageRows(summary, rev, now) {
		if err := dbClient.Store(ctx, row); err != nil {
			return fmt.Errorf("store data: %w", err)
		}
	}
	return nil
}

// dump outputs all coverage results
func dump(summary *report.Summary, logger logrus.FieldLogger) {
	logger.Debug("Summary of coverage:")
	logger.Debugf("overall %d %d %.2f%%", summary.ExecutableLines, summary.CoveredLines, summary.CoveragePercent)

	for _, target := range summary.Targets {
		logger.Debugf("%s %d %d %.1f%%",
			target.Name,
			target.ExecutableLines,
			target.CoveredLines,
			calculateCoverage(int64(target.CoveredLines), int64(target.ExecutableLines)),
		)
	}
}
