// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Intake: Wizard draft lifetimes and document slot names.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bhugol-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the expected 'iss' claim in bearer tokens from the
	// program-office identity provider.
	AuthIssuer = "identity.bhugol.app"
)

// # Intake Wizard

const (
	// WizardDraftTTL bounds one wizard run. A draft that has seen no action
	// for this long is discarded; drafts never survive past it.
	WizardDraftTTL = 45 * time.Minute

	// MaxDocumentSizeBytes caps a single uploaded document image.
	MaxDocumentSizeBytes = 8 << 20

	// MaxMultipartMemoryBytes bounds in-memory parsing of a submission form.
	MaxMultipartMemoryBytes = 32 << 20
)

// # Document Slots

const (
	SlotAadharCard        = "aadharCard"
	SlotPanCard           = "panCard"
	SlotProofOfProduction = "proofOfProduction"
	SlotSignature         = "signature"
	SlotPhoto             = "photo"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Response Fields

const (
	FieldCode  = "code"
	FieldError = "error"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaGI      = "gi"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixWizardDraft     = "wizard:draft:"
	RedisPrefixCatalogCategory = "catalog:categories"
	RedisPrefixCatalogProduct  = "catalog:products"
)

// # Cache TTLs

const (
	// CatalogCacheTTL bounds staleness of the cached catalog. The catalog is
	// immutable within one wizard session, so a short TTL is safe.
	CatalogCacheTTL = 5 * time.Minute
)
