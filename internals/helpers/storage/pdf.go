package storage

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// VerifyPDF checks the bytes parse as a PDF with at least one page.
func VerifyPDF(data []byte) (pages int, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, fmt.Errorf("%w: only PDF files are accepted", ErrUnsupported)
	}
	defer func() {
		// the parser panics on some truncated files
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: damaged PDF", ErrUnsupported)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: damaged PDF", ErrUnsupported)
	}
	n := r.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: PDF has no pages", ErrUnsupported)
	}
	return n, nil
}
