// Package api serves the folio pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	POST /v1/worksheets/layout
//	POST /v1/worksheets/render?format=svg|png|json
//	POST /v1/worksheets/reading-order
//	POST /v1/workbooks/compose
//	POST /v1/workbooks/spreads
//	POST /v1/workbooks/outline?format=svg|png|dot
//	POST /v1/viewport/wheel
//	POST /v1/selection/lasso
//
// Request bodies are JSON. Worksheets and workbooks are decoded tolerantly:
// missing geometry is defaulted and workbook numbering is healed, the same
// as on file import. Errors are written as {"code", "message"} with a status
// derived from the error code. Cached endpoints report X-Cache: HIT or MISS.
package api
