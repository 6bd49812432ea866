// Package domain contains the core business entities of the application:
// users, classes, saved resources, usage records and the administrative
// organization, payment and audit records. It is independent of any
// storage or delivery mechanism.
package domain
