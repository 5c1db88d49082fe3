package components

import (
	"lodgekeeper/internal/infra/export"
	"lodgekeeper/internal/infra/ocr"
	"lodgekeeper/internal/infra/storage"
	"lodgekeeper/internal/pkg/config"
	"lodgekeeper/internal/usecase/commands"

	"go.uber.org/fx"
)

var MediaModule = fx.Module("media",
	fx.Provide(
		fx.Annotate(
			NewImageStore,
			fx.As(new(commands.ImageStore)),
		),
		fx.Annotate(
			NewTextExtractor,
			fx.As(new(commands.TextExtractor)),
		),
		NewPDFExporter,
		NewExcelExporter,
	),
)

func NewImageStore(cfg config.Config) (*storage.LocalImageStore, error) {
	return storage.NewLocalImageStore(cfg.Media)
}

func NewTextExtractor(cfg config.Config) *ocr.TesseractExtractor {
	return ocr.NewTesseractExtractor(cfg.OCR)
}

func NewPDFExporter(cfg config.Config) *export.PDFExporter {
	return export.NewPDFExporter(cfg.Lodge)
}

func NewExcelExporter(cfg config.Config) *export.ExcelExporter {
	return export.NewExcelExporter(cfg.Lodge)
}
