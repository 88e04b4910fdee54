package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libcatalog/internal/config"
	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/entities"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
	setOutput(w io.Writer)
}

func (b *base) setOutput(w io.Writer) { b.Out = w }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "catalog.db"), LogLevel: "silent"},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit")},
	}
}

func execute(t *testing.T, cmd command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.setOutput(&out)
	if err := cmd.ParseFlags(args); err != nil {
		return "", err
	}
	err := cmd.Run()
	return out.String(), err
}

var addedID = regexp.MustCompile(`#(\d+)`)

func addBook(t *testing.T, cfg *config.Config, title, isbn string) string {
	t.Helper()
	out, err := execute(t, NewAddBookCommand(cfg), "-title", title, "-year", "1967", "-isbn", isbn, "-acquired", "2024-01-02")
	require.NoError(t, err)
	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestAddAndList(t *testing.T) {
	cfg := testConfig(t)

	id := addBook(t, cfg, "cien AÑOS de soledad", "0307474720")
	assert.Equal(t, "1", id)

	out, err := execute(t, NewAddAudiobookCommand(cfg),
		"-title", "Sapiens", "-year", "2014", "-start", "2024-01-01", "-end", "2024-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Audiobook #2")

	out, err = execute(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "Cien años de soledad")
	assert.Contains(t, out, "ISBN 0307474720, available")
	assert.Contains(t, out, "Sapiens")
	assert.Contains(t, out, "not available now")

	t.Run("validation errors", func(t *testing.T) {
		_, err := execute(t, NewAddBookCommand(cfg), "-title", "Bad", "-year", "2000", "-isbn", "0307474721")
		assert.True(t, entities.IsValidationError(err))

		_, err = execute(t, NewAddBookCommand(cfg), "-title", "   ", "-year", "2000", "-isbn", "0307474720")
		assert.True(t, entities.IsValidationError(err), "blank titles are rejected before storing")

		_, err = execute(t, NewAddAudiobookCommand(cfg),
			"-title", "Backwards", "-year", "2014", "-start", "2024-02-01", "-end", "2024-01-01")
		assert.True(t, entities.IsValidationError(err))

		_, err = execute(t, NewAddBookCommand(cfg), "-title", "No isbn", "-year", "2000")
		assert.ErrorContains(t, err, "-isbn")
	})

	stats, err := execute(t, NewStatsCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, stats, "Books:      1")
	assert.Contains(t, stats, "Audiobooks: 1")
}

func TestSearch(t *testing.T) {
	cfg := testConfig(t)
	_, err := execute(t, NewSeedCommand(cfg))
	require.NoError(t, err)

	out, err := execute(t, NewSearchCommand(cfg), "-kind", "Audiobook")
	require.NoError(t, err)
	assert.Contains(t, out, "Sapiens")
	assert.NotContains(t, out, "Cien años")

	out, err = execute(t, NewSearchCommand(cfg), "-q", "CIEN")
	require.NoError(t, err)
	assert.Contains(t, out, "Cien años de soledad")
	assert.NotContains(t, out, "Sapiens")

	out, err = execute(t, NewSearchCommand(cfg), "-q", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")

	_, err = execute(t, NewSearchCommand(cfg), "-kind", "Magazine")
	assert.True(t, entities.IsValidationError(err))
}

func TestEditAndRemove(t *testing.T) {
	cfg := testConfig(t)
	id := addBook(t, cfg, "Draft", "0307474720")

	_, err := execute(t, NewLoanCommand(cfg, LoanLend), "-id", id)
	require.NoError(t, err)

	out, err := execute(t, NewEditCommand(cfg), "-id", id, "-title", "final TITLE", "-isbn", "843760494X")
	require.NoError(t, err)
	assert.Contains(t, out, `"Final title"`)

	out, err = execute(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "Final title")
	assert.Contains(t, out, "ISBN 843760494X, lent", "editing keeps the loan state")
	assert.Contains(t, out, "1967", "unchanged fields are kept")

	t.Run("flags of the other kind", func(t *testing.T) {
		_, err := execute(t, NewEditCommand(cfg), "-id", id, "-start", "2024-01-01")
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := execute(t, NewEditCommand(cfg), "-id", "999", "-title", "x")
		assert.ErrorIs(t, err, database.ErrItemNotFound)
	})

	out, err = execute(t, NewRemoveCommand(cfg), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed item #"+id)

	out, err = execute(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")

	_, err = execute(t, NewRemoveCommand(cfg), "-id", id)
	assert.NoError(t, err, "removing twice is not an error")
}

func TestLoans(t *testing.T) {
	cfg := testConfig(t)
	id := addBook(t, cfg, "Lendable", "0307474720")

	out, err := execute(t, NewLoanCommand(cfg, LoanToggle), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is lent")

	out, err = execute(t, NewLoanCommand(cfg, LoanLend), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is lent")

	out, err = execute(t, NewLoanCommand(cfg, LoanReturn), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is available")

	out, err = execute(t, NewLoanCommand(cfg, LoanToggle), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is lent")

	_, err = execute(t, NewAddAudiobookCommand(cfg),
		"-title", "Audio", "-year", "2014", "-start", "2024-01-01", "-end", "2024-02-01")
	require.NoError(t, err)
	_, err = execute(t, NewLoanCommand(cfg, LoanToggle), "-id", "2")
	assert.True(t, entities.IsValidationError(err))

	assert.Error(t, NewLoanCommand(cfg, "borrow").ParseFlags([]string{"-id", "1"}))
}

func TestRatings(t *testing.T) {
	cfg := testConfig(t)
	id := addBook(t, cfg, "Rated", "0307474720")

	out, err := execute(t, NewRatingsCommand(cfg), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "has no ratings")

	for _, score := range []int{2, 4, 6, 8} {
		_, err := execute(t, NewRateCommand(cfg), "-id", id, "-score", strconv.Itoa(score), "-comment", "ok")
		require.NoError(t, err)
	}

	out, err = execute(t, NewRatingsCommand(cfg), "-id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "average 5.00 from 4 ratings")
	assert.Contains(t, out, entities.DefaultRatingUser)

	_, err = execute(t, NewRateCommand(cfg), "-id", id, "-score", "11")
	assert.True(t, entities.IsValidationError(err))

	_, err = execute(t, NewRateCommand(cfg), "-id", id)
	assert.ErrorContains(t, err, "-score")

	_, err = execute(t, NewRateCommand(cfg), "-id", "404", "-score", "5")
	assert.ErrorIs(t, err, database.ErrItemNotFound)
}

func TestExportImport(t *testing.T) {
	source := testConfig(t)
	_, err := execute(t, NewSeedCommand(source))
	require.NoError(t, err)

	out, err := execute(t, NewSeedCommand(source))
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	file := filepath.Join(t.TempDir(), "catalog.csv")
	out, err = execute(t, NewExportCommand(source), "-file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 items")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, append(content, []byte("Libro;Broken;2000;2024-01-01;0000000001\n")...), 0644))

	target := testConfig(t)
	out, err = execute(t, NewImportCommand(target), "-file", file, "-report")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 of 3 items")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "line 5")
	assert.Contains(t, out, "Report saved as import-")

	reports, err := filepath.Glob(filepath.Join(target.Audit.Dir, "import-*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	out, err = execute(t, NewListCommand(target))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n")-1)
}
