package form

import (
	"fmt"
	"os"
	"os/exec"
)

// RefreshAppearances asks an external rendering-capable tool (qpdf) to
// regenerate the appearance streams of filled widgets, so viewers that do
// not honor NeedAppearances still display the text. Best effort: when qpdf
// is not installed, or the run fails, the filled document is left as written
// and the reason comes back as a warning.
func RefreshAppearances(path string) (refreshed bool, warning string) {
	qpdf, err := exec.LookPath("qpdf")
	if err != nil {
		return false, "appearance refresh skipped: qpdf not found on PATH"
	}

	tmp := path + ".refresh.tmp"
	cmd := exec.Command(qpdf, "--generate-appearances", path, tmp)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmp)
		return false, fmt.Sprintf("appearance refresh failed: %v: %s", err, out)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Sprintf("appearance refresh failed: %v", err)
	}
	return true, ""
}
