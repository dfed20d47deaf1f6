// Package service contains the application use cases of the job-matching
// platform: registration and lookup of professionals and companies, job ads,
// job applications and reference data. It also provides the existence and
// ownership guards every mutating operation runs before touching its target.
//
// Services depend on the store interfaces only. Every error they return is a
// *domain.Error whose Kind the API layer maps to an HTTP status; store
// sentinels are translated with Translate.
//
// The match workflow lives in the match subpackage and identity in auth.
package service
