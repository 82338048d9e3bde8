// Package layout is the serializable page geometry of a paginated worksheet.
//
// A [Layout] records, for every page, the absolute page-relative rectangle of
// each block. External renderers (PDF, image, HTML) consume it without
// re-deriving any pagination logic. Layouts round-trip through JSON and carry
// bson tags so they can be stored as cache documents.
//
//	pages := paginate.PaginateWorksheet(ws, heights)
//	l := layout.Build(ws, pages, heights)
//	data, _ := layout.Marshal(l)
package layout
