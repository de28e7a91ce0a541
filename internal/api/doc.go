// Package api implements the HTTP REST API for Casedesk Core.
//
// This package provides:
//   - Auth endpoints: register, login, me, check-role, profile,
//     change-password, seed-admin
//   - Admin endpoints: user listing and audit trail
//   - Middleware stack (request ID, logging, recovery, CORS, body limit,
//     bearer-token auth)
//
// # Architecture
//
// The API server sits between the dashboard front end and the credential
// store. Each request is an independent execution: the only process-wide
// state is immutable configuration (signing secret, listen address) loaded
// at startup. Token verification is pure CPU (one HMAC check plus a JSON
// parse) with no store round-trip; routes that need the live account
// re-fetch it and enforce is_active.
//
// # Error contract
//
// Errors are returned as {"detail": "<message>"} with statuses 400, 401,
// 403, 404, or 500. Login failures use one generic message for absent
// users, inactive users, and wrong passwords (enumeration resistance);
// token-shape errors may be specific. Internal errors are logged with
// detail server-side and surfaced as a generic 500.
package api
