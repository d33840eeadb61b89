// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package docstore defines the external document storage collaborator.
//
// # Contract
//
// Storage is write-once: a stored document is never rewritten, so the
// references it returns stay valid forever. Additional registrations copy
// references from their base registration instead of re-uploading bytes,
// which is what makes reference reuse race-free.
package docstore

import "context"

// Storage persists document bytes and returns stable opaque references.
type Storage interface {
	// Store writes one document and returns its reference. The slot name
	// (aadharCard, signature, ...) is advisory and may be encoded into the
	// reference for traceability.
	Store(context context.Context, registrationID, slot string, data []byte) (string, error)
}
