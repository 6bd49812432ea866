// Package service contains the application use cases of ClassPlay. Services
// orchestrate domain objects, stores and the generation core, and apply
// transactional boundaries where an operation writes more than one row.
//
// Services depend on store interfaces, never on a concrete database, and
// return sentinel errors from the domain, store, auth and generation
// packages wrapped with context. The API layer maps them to HTTP statuses.
package service
