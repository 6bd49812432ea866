// Package api contains the HTTP handlers of the ClassPlay API.
//
// Handlers decode and validate JSON requests into the DTOs in models.go,
// call the application services through the narrow interfaces in
// services.go and translate service errors into status codes and safe
// messages with HandleAPIError. The authenticated user is read from the
// request context, where middleware.AuthMiddleware places it.
package api
