// Package record persists which version of each tool is installed. The
// record is a single JSON file, {"tools": {"<tool>": "<version>"}}, under the
// launcher root. A missing, unreadable or malformed file reads as an empty
// record: corruption means "nothing installed", never an error.
package record
