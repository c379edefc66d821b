// Package models defines the core domain models for Spliteasy.
//
// All monetary fields are stored as integer paisa (1 rupee = 100 paisa);
// see the money package for conversion and splitting rules. An expense
// always carries the exact per-participant shares computed at creation
// time, so the invariant sum(shares) == amount holds for every persisted
// record. Rupee (decimal) amounts exist only in HTTP request and response
// bodies.
//
// Relationships use ID strings rather than pointers to avoid circular
// references; timestamps are Unix seconds.
package models
