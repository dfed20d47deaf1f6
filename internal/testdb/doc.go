// Package testdb provides helpers for PostgreSQL integration tests.
//
// Each test runs inside its own transaction which is rolled back when the
// test finishes, so tests may call t.Parallel() and share one schema:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor JOBMATCH_TEST_DB_URL is set.
package testdb
