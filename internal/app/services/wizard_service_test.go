package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univera/univera/internal/app/models/dto"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "student_name", normalizeHeader("Student Name"))
	assert.Equal(t, "email", normalizeHeader("  EMAIL  "))
	assert.Equal(t, "date_of_birth", normalizeHeader("Date Of Birth"))
	assert.Equal(t, "", normalizeHeader(""))
}

func TestMapHeaders(t *testing.T) {
	columns := mapHeaders([]string{"Student Name", "Email", "Phone", "DOB", "Gender", "Favourite Colour"})

	assert.Equal(t, 0, columns["name"])
	assert.Equal(t, 1, columns["email"])
	assert.Equal(t, 2, columns["mobile"])
	assert.Equal(t, 3, columns["dob"])
	assert.Equal(t, 4, columns["gender"])

	// Unknown columns are ignored, not mapped
	assert.Len(t, columns, 5)

	// Synonyms resolve to the same canonical keys
	alt := mapHeaders([]string{"name", "email", "mobile", "date_of_birth"})
	assert.Equal(t, 0, alt["name"])
	assert.Equal(t, 2, alt["mobile"])
	assert.Equal(t, 3, alt["dob"])
}

func TestBuildRow(t *testing.T) {
	columns := mapHeaders([]string{"Name", "Email", "Mobile", "DOB", "Gender"})

	row, err := buildRow(2, []string{"Asha Rao", "asha@univera.edu", "9876543210", "2004-06-15", "female"}, columns)
	require.NoError(t, err)
	assert.Equal(t, 2, row.row)
	assert.Equal(t, "Asha Rao", row.name)
	assert.Equal(t, "asha@univera.edu", row.email)
	assert.Equal(t, "9876543210", row.mobile)
	assert.Equal(t, "female", row.gender)
	require.NotNil(t, row.dob)
	assert.Equal(t, time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC), *row.dob)

	// Optional cells may be missing entirely
	short, err := buildRow(3, []string{"Ravi Kumar", "ravi@univera.edu"}, columns)
	require.NoError(t, err)
	assert.Equal(t, "", short.mobile)
	assert.Nil(t, short.dob)
}

func TestBuildRowErrors(t *testing.T) {
	columns := mapHeaders([]string{"Name", "Email", "DOB"})

	_, err := buildRow(2, []string{"", "asha@univera.edu", ""}, columns)
	assert.Error(t, err)

	_, err = buildRow(2, []string{"Asha Rao", "", ""}, columns)
	assert.Error(t, err)

	_, err = buildRow(2, []string{"Asha Rao", "asha@univera.edu", "15/06/2004"}, columns)
	assert.ErrorContains(t, err, "date of birth")
}

func TestParseImportFileCSV(t *testing.T) {
	csvData := "Name,Email\nAsha Rao,asha@univera.edu\nRavi Kumar,ravi@univera.edu\n"

	records, err := parseImportFile("students.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Email"}, records[0])
	assert.Equal(t, []string{"Asha Rao", "asha@univera.edu"}, records[1])

	// Ragged rows are tolerated at parse time; buildRow handles the gaps
	ragged := "Name,Email,Mobile\nAsha Rao,asha@univera.edu\n"
	records, err = parseImportFile("STUDENTS.CSV", strings.NewReader(ragged))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAdmitRowsContinuesPastBadRows(t *testing.T) {
	csvData := "Name,Email,DOB\n" +
		"Asha Rao,asha@univera.edu,2004-06-15\n" +
		",missing-name@univera.edu,\n" +
		"Ravi Kumar,ravi@univera.edu,31/12/2004\n" +
		"Meena Iyer,meena@univera.edu,\n" +
		"Dup Licate,asha@univera.edu,\n"

	records, err := parseImportFile("students.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	columns := mapHeaders(records[0])

	result := &dto.BulkResult{}
	var admitted []string
	admitRows(records, columns, result, func(row importRow, firstName, lastName string) error {
		for _, email := range admitted {
			if email == row.email {
				return errors.New("email already registered")
			}
		}
		admitted = append(admitted, row.email)
		return nil
	})

	// The missing name, the bad date and the duplicate become row errors;
	// the rows after each one are still admitted
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, []string{"asha@univera.edu", "meena@univera.edu"}, admitted)

	require.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, 6, result.Errors[2].Row)
	assert.Contains(t, result.Errors[2].Message, "already registered")
}

func TestAdmitRowsSplitsNames(t *testing.T) {
	csvData := "Name,Email\nAsha Devi Rao,asha@univera.edu\nRavi,ravi@univera.edu\n"

	records, err := parseImportFile("students.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	type name struct{ first, last string }
	var names []name
	result := &dto.BulkResult{}
	admitRows(records, mapHeaders(records[0]), result, func(row importRow, firstName, lastName string) error {
		names = append(names, name{firstName, lastName})
		return nil
	})

	require.Len(t, names, 2)
	assert.Equal(t, name{"Asha", "Devi Rao"}, names[0])
	// A single-word name leaves the last name empty
	assert.Equal(t, name{"Ravi", ""}, names[1])
}

func TestParseImportFileUnsupported(t *testing.T) {
	_, err := parseImportFile("students.pdf", strings.NewReader("data"))
	assert.Error(t, err)

	_, err = parseImportFile("students", strings.NewReader("data"))
	assert.Error(t, err)
}
