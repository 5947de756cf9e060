// Package services implements the driving port interfaces.
//
// LifecycleService owns both post collections and their cursors; the other
// services reach posts only through it. Every mutation is persisted by a
// full rewrite of the affected collection before the call returns, and a
// failed write leaves the in-memory state changed and reports
// domain.ErrPersistence.
package services
