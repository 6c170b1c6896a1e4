package form

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// VerifyOutput re-opens a freshly written document with an independent PDF
// reader and compares its page count against the template. Any problem is a
// warning, never a failure: the write already succeeded, this is a sanity
// check with a second implementation.
func VerifyOutput(templatePath, outputPath string) []string {
	templatePages, err := pageCount(templatePath)
	if err != nil {
		return []string{fmt.Sprintf("output verification skipped: %v", err)}
	}
	outputPages, err := pageCount(outputPath)
	if err != nil {
		return []string{fmt.Sprintf("output does not re-open cleanly: %v", err)}
	}
	if templatePages != outputPages {
		return []string{fmt.Sprintf("output has %d pages, template has %d", outputPages, templatePages)}
	}
	return nil
}

func pageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}
