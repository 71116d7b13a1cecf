// Package export defines the tabular export domain: the sheet/header/row
// result produced by every resource mapper, the field-shape tolerance rules
// for upstream documents, and the error taxonomy of the extraction pipeline.
package export
