// Package drive links resume files from a locally synced folder to the rows
// that uploaded them. The folder itself is mirrored from cloud storage by an
// external sync client; this side only does filename matching.
package drive

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Target is one row's identity for filename matching.
type Target struct {
	First  string
	Last   string
	Resume string // current value of the resume column
}

type Syncer struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Syncer {
	return &Syncer{dir: dir, logger: logger}
}

// Scan lists resume files in the sync folder, newest-name-last for
// deterministic assignment.
func (s *Syncer) Scan() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "scan resume folder %s", s.dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt":
			paths = append(paths, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(paths)

	s.logger.Info("scanned resume folder", zap.String("dir", s.dir), zap.Int("files", len(paths)))
	return paths, nil
}

// MatchFiles assigns each file to at most one row by filename substrings.
// A first+last hit claims the file outright; a bare last-name hit is weaker
// and only fills rows whose resume cell is empty or still a raw upload URL.
// Returned map keys are row indexes into targets.
func MatchFiles(paths []string, targets []Target) map[int]string {
	assigned := make(map[int]string)

	for _, path := range paths {
		filename := strings.ToLower(filepath.Base(path))

		for i, tgt := range targets {
			first := strings.ToLower(strings.TrimSpace(tgt.First))
			last := strings.ToLower(strings.TrimSpace(tgt.Last))

			if first != "" && last != "" &&
				strings.Contains(filename, first) && strings.Contains(filename, last) {
				assigned[i] = path
				break
			}

			// Short surnames collide too easily for a bare-surname match.
			if last != "" && len(last) > 3 && strings.Contains(filename, last) {
				if tgt.Resume == "" || strings.HasPrefix(tgt.Resume, "http") {
					assigned[i] = path
				}
			}
		}
	}

	return assigned
}
