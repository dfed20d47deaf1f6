// Package mocks provides shared test doubles.
//
// MemoryDB is an in-memory replacement for the PostgreSQL stores. It keeps the
// same uniqueness and foreign-key rules, supports compare-and-set match
// updates and implements store.TxRunner with rollback on error, so service
// and handler tests run the real business logic without a database:
//
//	db := mocks.NewMemoryDB()
//	city := db.AddCity("Sofia")
//	svc := match.NewService(match.Deps{
//	    Tx:      db,
//	    Matches: db.Matches(),
//	    // ...
//	})
//
// Inside RunInTx, writes must go through the views returned by WithTx;
// writes through the plain views wait for running transactions to finish.
//
// Failures can be injected per operation with FailOn. MockJWTService and
// PlainPasswords follow the function-field style: set a *Fn field to override
// behaviour, or the default value fields for canned responses.
package mocks
