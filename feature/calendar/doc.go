// Package calendar implements side A of the sync: calendar events stored in a
// SQL table through GORM.
//
// Side satisfies reconcile.SideAdapter. Event IDs are the table's auto-increment
// primary key rendered as decimal strings; an ID that does not parse or does not
// exist yields an error wrapping reconcile.ErrNotFound.
package calendar
