// Package changelog builds release notes for autover.
//
// This package implements:
//   - Version tag naming and history resolution (version_yyyy-MM-dd.HH.mm.ss)
//   - Markdown generation from conventional commits or per-project change entries
//   - Persistence by prepending to an existing changelog file
//   - Listing the releases recorded in an existing changelog
//
// A release is anchored on the newest version tag. Its commit range starts
// after the previous version tag, or covers the full history for the first
// release.
package changelog
