// Package core provides the business logic for race result tables.
//
// This package is the heart of uTiming, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// exporters, or tests without modification.
//
// # Pipeline
//
// A race view is built in one synchronous pass once its file has been
// fetched:
//
//  1. [Source.FetchCSV] returns the raw bytes for a [RaceDate]
//  2. [Parser.Parse] decodes the CSV, translates the header through the
//     schema table and normalizes driver names
//  3. [Columns] describes the table: sort keys, comparators, cell text
//  4. [Sort] returns a reordered copy for display
//
// Records are never mutated after parsing; every sort works on a copy.
//
// # Sources
//
// Backends register a [SourceDriver] at init time and are opened by kind
// with [OpenSource]:
//
//	core.RegisterSource(core.SourceDriver{
//	    Kind: "fs",
//	    Open: openFS,
//	})
//
// # Degraded values
//
// Cells that cannot be read never fail a load. Unreadable times sort last
// and unreadable decimals render as "--". Only transport failures and CSV
// syntax errors fail a view.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - RACE001-RACE004: Race file errors (not found, fetch, empty, malformed)
//   - IDX001-IDX002: Race index errors
//   - REQ001-REQ004: Request errors (date, sort, cancellation, timeout)
//   - RATE001-RATE002: Throttling
package core
