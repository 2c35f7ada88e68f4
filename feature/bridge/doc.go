// Package bridge converts items between the calendar side and the task side.
//
// EventToTask and TaskToEvent are reconcile.Converter functions. They never
// copy IDs or modification times: those belong to the side an item is written to.
package bridge
