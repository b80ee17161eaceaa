// Package core provides the business logic for vendor (salesperson) records.
//
// This package has no UI or transport dependencies. It is used by the CLI,
// the TUI menu and the web server alike.
//
// # Architecture
//
//   - Dates: [ParseDate] reads dd/mm/yyyy, mm/dd/yyyy, dd-mm-yyyy and
//     mm-dd-yyyy into a [Date], separating shape errors from calendar errors.
//   - Codec: [Codec] validates row shape, decodes rows into [Vendor] values
//     and encodes vendors back to rows.
//   - Store: [Store] loads rows once from a [LineSource], caches the
//     deduplicated [RecordSet] for the life of the process, and appends new
//     rows to a [LineSink].
//   - Reports: [GeneralReport] and [AverageAgeReport] are built on demand
//     from a record set.
//   - Service: [Service] ties the store and reports together for callers.
//
// # Row Format
//
// Rows are read as
//
//	id,name,MM/DD/YYYY,region
//
// and written as
//
//	id,name(<=35),DD/MM/YYYY,region(<=15)
//
// The day/month order differs between the two directions. Existing input
// files are month-first and existing output files are day-first, and both
// stay readable by the tools that consume them.
//
// # Error Handling
//
// Operations wrap the sentinel errors in errors.go. [MapError] turns any of
// them into a [UserMessage] with a support code:
//
//   - DATE001-DATE002: date shape and calendar errors
//   - VAL001-VAL003: identifier, row and field validation
//   - SRC001, SRC002, SNK001: storage read, stored data and write failures
//   - DB004-DB006: database connectivity
package core
