// Package domain contains the core business entities, value objects, and
// domain logic of the application: accounts, job ads, job applications, the
// match state machine and the typed errors that cross the API boundary.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
