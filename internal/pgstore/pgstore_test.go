package pgstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB keeps rows per table in memory and records executed statements.
type fakeDB struct {
	input    []string
	saved    []string
	ids      []uuid.UUID
	execs    []string
	execErr  error
	queryErr error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.execs = append(f.execs, sql)
	switch {
	case strings.HasPrefix(sql, "INSERT INTO "+SavedTable):
		f.ids = append(f.ids, args[0].(uuid.UUID))
		f.saved = append(f.saved, args[1].(string))
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.HasPrefix(sql, "INSERT INTO "+InputTable):
		f.ids = append(f.ids, args[0].(uuid.UUID))
		f.input = append(f.input, args[1].(string))
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.HasPrefix(sql, "TRUNCATE"):
		f.input, f.saved, f.ids = nil, nil, nil
		return pgconn.NewCommandTag("TRUNCATE TABLE"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{lines: append([]string(nil), f.input...), idx: -1}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return fakeRow{counts: []int64{int64(len(f.input)), int64(len(f.saved))}, err: f.queryErr}
}

type fakeRows struct {
	pgx.Rows
	lines []string
	idx   int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.lines)
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.lines[r.idx]
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

type fakeRow struct {
	counts []int64
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		*(dest[i].(*int64)) = r.counts[i]
	}
	return nil
}

// fakeTx stages statements in its own fakeDB and copies them to the parent
// on Commit.
type fakeTx struct {
	pgx.Tx
	db         *fakeDB
	staged     *fakeDB
	committed  bool
	rolledBack bool
	failAfter  int
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if tx.failAfter >= 0 && len(tx.staged.input) >= tx.failAfter {
		return pgconn.CommandTag{}, errors.New("connection reset by peer")
	}
	return tx.staged.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	tx.db.input = append(tx.db.input, tx.staged.input...)
	tx.db.saved = append(tx.db.saved, tx.staged.saved...)
	tx.db.ids = append(tx.db.ids, tx.staged.ids...)
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	db        *fakeDB
	tx        *fakeTx
	failAfter int
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	b.tx = &fakeTx{db: b.db, staged: &fakeDB{}, failAfter: b.failAfter}
	return b.tx, nil
}

func TestStore_ReadLines(t *testing.T) {
	db := &fakeDB{input: []string{"1,Jane,07/25/1984,TX", "2,John,01/02/1990,CA"}}

	lines, err := New(db).ReadLines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1,Jane,07/25/1984,TX", "2,John,01/02/1990,CA"}, lines)
}

func TestStore_AppendLineGoesToSavedTable(t *testing.T) {
	db := &fakeDB{}
	store := New(db)
	ctx := context.Background()

	require.NoError(t, store.AppendLine(ctx, "1,Jane,25/07/1984,TX"))
	require.NoError(t, store.AppendLine(ctx, "2,John,02/01/1990,CA"))

	assert.Equal(t, []string{"1,Jane,25/07/1984,TX", "2,John,02/01/1990,CA"}, db.saved)
	assert.Empty(t, db.input)

	lines, err := store.ReadLines(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.Len(t, db.ids, 2)
	assert.NotEqual(t, db.ids[0], db.ids[1])
}

// Saved rows are day-first; reading them back as month-first input would
// fail or swap day and month.
func TestStore_SavedVendorDoesNotBreakNextLoad(t *testing.T) {
	db := &fakeDB{input: []string{"1,Ana,07/25/1984,Texas"}}
	rows := New(db)
	ctx := context.Background()

	first := core.NewStore(rows, rows)
	set, err := first.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	luis := core.Vendor{ID: 2, Name: "Luis", BirthDate: core.Date{Year: 1990, Month: time.July, Day: 25}, Region: "Ohio"}
	require.NoError(t, first.Append(ctx, luis))
	assert.Equal(t, []string{"2,Luis,25/07/1990,Ohio"}, db.saved)

	restarted := core.NewStore(rows, rows)
	set, err = restarted.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.False(t, set.Contains(luis))
}

func TestStore_ReadLines_Empty(t *testing.T) {
	lines, err := New(&fakeDB{}).ReadLines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_ReadLines_QueryError(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection refused")}

	_, err := New(db).ReadLines(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query vendor_rows")
	assert.ErrorIs(t, err, db.queryErr)
}

func TestStore_AppendLine_ExecError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("read only transaction")}

	err := New(db).AppendLine(context.Background(), "1,Jane,25/07/1984,TX")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.execErr)
}

func TestStore_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, New(db).EnsureSchema(context.Background()))
	require.Len(t, db.execs, 2)
	assert.Contains(t, db.execs[0], "CREATE TABLE IF NOT EXISTS vendor_rows")
	assert.Contains(t, db.execs[1], "CREATE TABLE IF NOT EXISTS saved_vendor_rows")
}

func TestStore_CountAndReset(t *testing.T) {
	db := &fakeDB{input: []string{"1,Jane,07/25/1984,TX"}}
	store := New(db)
	ctx := context.Background()

	require.NoError(t, store.AppendLine(ctx, "2,Ana,25/07/1984,TX"))
	require.NoError(t, store.AppendLine(ctx, "3,Bob,01/02/1990,CA"))
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Input: 1, Saved: 2}, n)
	assert.Equal(t, int64(3), n.Total())

	require.NoError(t, store.Reset(ctx))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n.Total())
}

func TestImport_Commits(t *testing.T) {
	db := &fakeDB{}
	beginner := &fakeBeginner{db: db, failAfter: -1}

	n, err := Import(context.Background(), beginner, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, []string{"a", "b", "c"}, db.input)
	assert.Empty(t, db.saved)
}

func TestImport_RollsBackOnFailure(t *testing.T) {
	db := &fakeDB{}
	beginner := &fakeBeginner{db: db, failAfter: 2}

	n, err := Import(context.Background(), beginner, []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import line 3")
	assert.Zero(t, n)
	assert.False(t, beginner.tx.committed)
	assert.True(t, beginner.tx.rolledBack)
	assert.Empty(t, db.input)
}
