package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/24dai03-saifchaus/algonexus/internal/export"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// saveGIF writes the recorded steps to dir and returns the file path.
func saveGIF(dir, algorithm string, frames trace.Trace) (string, error) {
	if len(frames) == 0 {
		return "", trace.ErrEmptyTrace
	}
	name := fmt.Sprintf("%s_%s.gif", algorithm, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := export.TraceToGIF(f, frames, export.DefaultGIFOptions()); err != nil {
		return "", err
	}
	return path, nil
}
