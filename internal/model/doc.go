// Package model defines domain data structures used across the app: download
// tasks, video metadata, playlist entities, and status enums. Structures carry
// JSON tags matching the API wire format and expose explicit state predicates.
package model
