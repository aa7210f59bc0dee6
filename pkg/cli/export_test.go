package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
)

// RunForTest runs the application with the given stdin and stdout.
func RunForTest(ctx context.Context, r io.Reader, w io.Writer, args []string) error {
	return newApp(r, w).Run(ctx, args)
}

// ReadRecordsForTest exposes readRecords for testing
func ReadRecordsForTest(ctx context.Context, inputFile string, stdin io.Reader) ([]tap.Record, error) {
	return readRecords(ctx, inputFile, stdin)
}
