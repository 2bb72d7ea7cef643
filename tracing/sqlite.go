package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a writer that writes trace records to a SQLite
// database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName         string
	recordsToWrite []Record
	batchSize      int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter. If path is empty, a
// unique database name is generated at Init time.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init establishes a connection to the database.
func (t *SQLiteTraceWriter) Init() {
	t.createDatabase(xid.New().String())
	t.createTable()
	t.prepareStatement()
}

// Write buffers a record for insertion into the database.
func (t *SQLiteTraceWriter) Write(r Record) {
	t.recordsToWrite = append(t.recordsToWrite, r)
	if len(t.recordsToWrite) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered records to the database.
func (t *SQLiteTraceWriter) Flush() {
	if len(t.recordsToWrite) == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, r := range t.recordsToWrite {
		_, err := t.statement.Exec(
			r.ID,
			r.Origin,
			r.Kind,
			r.Address,
			r.Value,
			r.Bitmask,
			r.Outcome,
			r.Reason,
			r.IssuedAt.UnixNano(),
			r.ResolvedAt.UnixNano(),
		)
		if err != nil {
			panic(err)
		}
	}

	t.recordsToWrite = nil
}

func (t *SQLiteTraceWriter) createDatabase(fileName string) {
	if t.dbName == "" {
		t.dbName = "swamp_trace_" + fileName
	}

	filename := t.dbName + ".sqlite3"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

func (t *SQLiteTraceWriter) createTable() {
	t.mustExecute(`
		create table trace
		(
			transaction_id varchar(200) not null,
			origin         varchar(200) default '',
			kind           varchar(100) default '',
			address        integer      not null,
			value          integer      default 0,
			bitmask        integer      default 0,
			outcome        varchar(100) default '',
			reason         varchar(200) default '',
			issued_at      integer      not null,
			resolved_at    integer      default 0
		);
	`)

	t.mustExecute(`
		create index trace_transaction_id_index
			on trace (transaction_id);
	`)

	t.mustExecute(`
		create index trace_origin_index
			on trace (origin);
	`)

	t.mustExecute(`
		create index trace_address_index
			on trace (address);
	`)

	t.mustExecute(`
		create index trace_outcome_index
			on trace (outcome);
	`)
}

func (t *SQLiteTraceWriter) prepareStatement() {
	stmt, err := t.Prepare(`
		insert into trace
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		panic(err)
	}

	t.statement = stmt
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(err)
	}

	return res
}
