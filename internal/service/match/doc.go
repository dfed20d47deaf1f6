// Package match implements the match workflow between job applications and
// job ads.
//
// A pair starts with no match. Either side may send a request, which creates
// the match in the requested state of that side. Only the other side may then
// accept or reject it; both outcomes are final. Accepting also marks the job
// application matched, archives the job ad and counts a successful match for
// the company, all in one transaction.
//
// Creation relies on the store inserting at most one row per pair, and every
// response is a conditional update on the status the caller read, so two
// concurrent actors on one pair always produce a single winner.
package match
