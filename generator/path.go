package generator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ResolveOutPath computes where output for target t goes.
//
// Without outPath the file lands next to the source. outPath is taken as a
// directory when it is an existing directory, ends with a separator or has
// no extension; otherwise it is the destination file itself. If probing
// outPath fails for any reason other than non-existence, outPath is returned
// unchanged: generation must not stop on a failed stat.
func ResolveOutPath(fsys afero.Fs, sourcePath, outPath string, t Target) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	defaultName := t.DefaultFileName(base)

	if outPath == "" {
		return filepath.Join(filepath.Dir(sourcePath), defaultName)
	}

	existingDir, err := isExistingDir(fsys, outPath)
	if err != nil {
		log.Debug().Err(err).Str("out", outPath).Msg("out-path-probe-failed")
		return outPath
	}
	if existingDir ||
		strings.HasSuffix(outPath, string(filepath.Separator)) ||
		filepath.Ext(outPath) == "" {
		return filepath.Join(outPath, defaultName)
	}
	return outPath
}

func isExistingDir(fsys afero.Fs, path string) (bool, error) {
	fi, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}
