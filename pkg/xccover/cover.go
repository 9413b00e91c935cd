package xccover

import (
	"context"

	"github.com/Azure/xccover/pkg/report"
)

// XCCover interface to generate coverage result.
type XCCover interface {
	Run(ctx context.Context) (*report.Summary, error)
}
