// Package fix holds the edit passes applied to converted robot PROTO
// files.
//
// Each [Pass] searches the document for the entities it rewrites and
// handles them one at a time.  A failure on one entity is logged and
// counted in the pass [Report]; the remaining entities are still
// processed and nothing is rolled back.
package fix
