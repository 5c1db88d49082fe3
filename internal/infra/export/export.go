package export

import (
	"io"

	"lodgekeeper/internal/usecase/queries"
)

// ReportExporter renders a built report into a downloadable document.
type ReportExporter interface {
	ContentType() string
	FileExtension() string
	Write(w io.Writer, data *queries.ReportData) error
}
