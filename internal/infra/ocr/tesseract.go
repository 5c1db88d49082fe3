package ocr

import (
	"context"
	"strings"

	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/pkg/errs"

	"github.com/otiai10/gosseract/v2"
)

var ErrExtractionFailed = errs.New("text extraction failed")

// TesseractExtractor runs the local tesseract engine over voucher scans.
// One client per call: gosseract clients are not safe for concurrent use.
type TesseractExtractor struct {
	languages []string
}

func NewTesseractExtractor(cfg config.OCRConfig) *TesseractExtractor {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractExtractor{languages: languages}
}

func (e *TesseractExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", errs.Mark(err, ErrExtractionFailed)
	}

	if err := client.SetImage(imagePath); err != nil {
		return "", errs.Mark(err, ErrExtractionFailed)
	}

	text, err := client.Text()
	if err != nil {
		return "", errs.Mark(err, ErrExtractionFailed)
	}

	return strings.TrimSpace(text), nil
}
