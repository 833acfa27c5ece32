package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/grove/internal/errors"
)

// EditFile opens path in the inline editor and writes it back on save. A
// missing file starts empty and is created on save. It reports whether the
// file was written.
func (r *Runner) EditFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.E(errors.Op("workflow.EditFile"), errors.KindIO, err)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	hint := strings.TrimPrefix(filepath.Ext(path), ".")
	if hint == "" {
		hint = filepath.Base(path)
	}
	res, err := r.UI.InlineEditor(ctx, string(data), filepath.Base(path), hint)
	if err != nil {
		return false, err
	}
	text, err := saved(res)
	if err != nil {
		return false, err
	}
	if text == string(data) {
		r.success("No changes to %s", path)
		return false, nil
	}

	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return false, errors.E(errors.Op("workflow.EditFile"), errors.KindIO, err)
	}
	r.logger().Info("wrote file", "path", path, "bytes", len(text))
	r.success("Wrote %s", path)
	return true, nil
}
