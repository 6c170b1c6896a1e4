package form

import (
	"fmt"
	"os/exec"
	"strings"
)

// RenderPreview rasterizes the first page of a filled document to a PNG at
// previewPath, preserving page dimensions. Rendering is delegated to
// poppler's pdftoppm; asking for a preview without it installed is an error
// naming the missing capability, since the caller explicitly requested the
// file.
func RenderPreview(pdfPath, previewPath string) error {
	pdftoppm, err := exec.LookPath("pdftoppm")
	if err != nil {
		return fmt.Errorf("preview rendering requires poppler's pdftoppm on PATH: %w", err)
	}

	prefix := strings.TrimSuffix(previewPath, ".png")
	cmd := exec.Command(pdftoppm, "-png", "-singlefile", "-r", "150", "-f", "1", "-l", "1", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("render preview: %v: %s", err, out)
	}
	return nil
}
