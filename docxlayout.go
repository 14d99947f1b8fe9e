// Package docxlayout provides a fluent API for loading word-processing
// (.docx) packages into a document model and laying them out on pages.
//
// Basic usage:
//
//	res, err := docxlayout.Open("report.docx").Layout()
//	if err != nil {
//	    // handle error
//	}
//	for _, d := range res.Diagnostics {
//	    log.Println(d)
//	}
//	fmt.Println(res.Tree.PageCount())
//
// With options:
//
//	res, err := docxlayout.Open("report.docx").
//	    Geometry(model.A4()).
//	    Metrics(font.NewGoFonts()).
//	    Logger(logger).
//	    Layout()
//
// The lower-level packages (container, xmltree, docx, style, builder and
// layout) can be used directly for finer control over each stage.
package docxlayout

// Open returns a Loader that reads the package at path when a terminal
// operation runs.
//
// Example:
//
//	res, err := docxlayout.Open("document.docx").Document()
func Open(path string) *Loader {
	return &Loader{
		path:    path,
		options: defaultOptions(),
	}
}

// FromBytes returns a Loader for an in-memory package. The bytes are
// never modified and must not be modified by the caller while a load
// runs.
//
// Example:
//
//	res, err := docxlayout.FromBytes(data).Layout()
func FromBytes(data []byte) *Loader {
	return &Loader{
		data:    data,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := docxlayout.Must(docxlayout.Open("document.docx").Layout())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
