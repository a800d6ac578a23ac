package history

// Keeps a transcript of what was typed at the REPL, and what came back, in a SQL database. A Store
// also serves as the REPL's line-editing history, so that history survives between sessions.

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// The names we accept in the config file, mapped to the names the drivers register themselves
// under.
var drivers = map[string]string{"firebird": "firebirdsql", "firebirdsql": "firebirdsql", "mariadb": "mysql",
	"mysql": "mysql", "oracle": "oracle", "postgres": "postgres", "sqlite": "sqlite", "sqlserver": "sqlserver"}

// How each driver spells the nth placeholder, counting from 1.
var placeholders = map[string]func(n int) string{
	"postgres":  func(n int) string { return "$" + strconv.Itoa(n) },
	"sqlserver": func(n int) string { return "@p" + strconv.Itoa(n) },
	"oracle":    func(n int) string { return ":" + strconv.Itoa(n) },
}

var ErrUnknownDriver = errors.New("history: unknown driver")

// One input and what came of it.
type Entry struct {
	ID      int64
	Session string
	Digest  string
	Input   string
	Output  string
	Failed  bool
	Created time.Time
}

// A Store is a transcript table in an open database, plus an in-memory copy of the inputs for
// the line editor to scroll through.
//
// A Store is not safe for concurrent use.
type Store struct {
	db      *sql.DB
	driver  string
	session string
	lines   []string
	nextID  int64
}

func GetSortedDrivers() []string {
	dr := []string{}
	for k := range drivers {
		dr = append(dr, k)
	}
	sort.Strings(dr)
	return dr
}

// Opens the database, makes the transcript table if it isn't there, and loads the inputs of the
// given session.
func Open(driver, dsn, session string) (*Store, error) {
	name, ok := drivers[strings.ToLower(driver)]
	if !ok {
		return nil, fmt.Errorf("%w %q: the available drivers are %s", ErrUnknownDriver, driver, strings.Join(GetSortedDrivers(), ", "))
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: connect to %s: %w", driver, err)
	}
	st := &Store{db: db, driver: name, session: session}
	if err := st.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("opened transcript", "driver", name, "session", session, "lines", len(st.lines))
	return st, nil
}

// The table and its columns are named so that no dialect needs them quoted: nothing starts
// with an underscore and nothing is a reserved word in Oracle or Firebird.
const transcriptTable = "minilisp_transcript"

// Plain enough for all the drivers. SQL Server, Oracle and Firebird don't take IF NOT EXISTS,
// and go-ora won't take a trailing semicolon, so we look for the table before making it.
const createTable = `CREATE TABLE ` + transcriptTable + ` (
    id integer PRIMARY KEY,
    session_name varchar(64),
    digest char(64),
    input_text varchar(4000),
    output_text varchar(4000),
    failed integer,
    created varchar(40)
    )`

func (st *Store) initialize() error {
	if !st.tableExists() {
		if _, err := st.db.Exec(createTable); err != nil {
			return fmt.Errorf("history: create table: %w", err)
		}
	}
	if err := st.db.QueryRow("SELECT COALESCE(MAX(id), 0) FROM " + transcriptTable).Scan(&st.nextID); err != nil {
		return fmt.Errorf("history: read ids: %w", err)
	}
	st.nextID++
	entries, err := st.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		st.lines = append(st.lines, e.Input)
	}
	return nil
}

// Selecting no rows works in every dialect, and fails only if the table isn't there.
func (st *Store) tableExists() bool {
	rows, err := st.db.Query("SELECT id FROM " + transcriptTable + " WHERE 1 = 0")
	if err != nil {
		return false
	}
	rows.Close()
	return true
}

func (st *Store) Close() error {
	return st.db.Close()
}

func (st *Store) Session() string {
	return st.session
}

// Writes the n placeholders the driver wants, separated by commas.
func (st *Store) params(n int) string {
	ph, ok := placeholders[st.driver]
	if !ok {
		return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	}
	strs := make([]string, n)
	for i := range strs {
		strs[i] = ph(i + 1)
	}
	return strings.Join(strs, ", ")
}

func (st *Store) insertQuery() string {
	return "INSERT INTO " + transcriptTable + " (id, session_name, digest, input_text, output_text, failed, created) VALUES (" + st.params(7) + ")"
}

func (st *Store) selectQuery() string {
	return "SELECT id, session_name, digest, input_text, output_text, failed, created FROM " + transcriptTable +
		" WHERE session_name = " + st.params(1) + " ORDER BY id"
}

func Digest(input string) string {
	sum := blake2b.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Adds an input and its output to the transcript.
func (st *Store) Record(input, output string, failed bool) error {
	failedInt := 0
	if failed {
		failedInt = 1
	}
	_, err := st.db.Exec(st.insertQuery(), st.nextID, st.session, Digest(input), input, output, failedInt, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	st.nextID++
	st.lines = append(st.lines, input)
	return nil
}

// Returns the transcript of the session, oldest first.
func (st *Store) Entries() ([]Entry, error) {
	rows, err := st.db.Query(st.selectQuery(), st.session)
	if err != nil {
		return nil, fmt.Errorf("history: read: %w", err)
	}
	defer rows.Close()
	result := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			failed  int
			created string
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Digest, &e.Input, &e.Output, &failed, &created); err != nil {
			return nil, fmt.Errorf("history: read: %w", err)
		}
		e.Failed = failed != 0
		e.Created, _ = time.Parse(time.RFC3339Nano, created)
		result = append(result, e)
	}
	return result, rows.Err()
}

// The rest of this implements readline.History. The line editor calls Write when a line is
// entered: we don't record it there, since the REPL records it together with its output.

func (st *Store) Write(s string) (int, error) {
	return len(st.lines), nil
}

func (st *Store) GetLine(i int) (string, error) {
	if i < 0 || i >= len(st.lines) {
		return "", errors.New("history: index out of range")
	}
	return st.lines[i], nil
}

func (st *Store) Len() int {
	return len(st.lines)
}

func (st *Store) Dump() interface{} {
	return st.lines
}
