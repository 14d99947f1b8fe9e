// Package layout positions a document model on pages.
//
// The [Engine] breaks paragraphs into lines at Unicode line break
// opportunities, applies justification, indentation and spacing, lays
// out tables row by row and paginates the result. Text is measured
// through a [font.Provider], so the same engine works with real font
// programs or with fixed metrics in tests.
//
// # Usage
//
//	engine := layout.NewEngine(font.NewStandard())
//	tree, err := engine.Layout(doc, nil)
//	if err != nil {
//	    return err // page geometry leaves no content area
//	}
//	for _, page := range tree.Pages {
//	    for _, item := range page.Items {
//	        switch v := item.(type) {
//	        case *layout.Line:
//	            // v.Spans are positioned runs
//	        case *layout.TableFragment:
//	            // v.Rows placed on this page
//	        }
//	    }
//	}
//
// # Coordinates
//
// All positions are absolute page coordinates in points with the origin
// at the top-left corner of the page and y increasing downwards.
//
// # Failures
//
// Layout only fails when a section's page geometry has no content area.
// Everything else degrades: unmeasurable text gets zero size, unknown
// numbering renders an empty marker and oversized rows overflow their
// page. Each degradation is reported once in [Tree.Diagnostics].
package layout
