package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omsim/domain/radon"
	"omsim/internal/errors"
	"omsim/internal/testkit"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func seriesByID(b *radon.Building) map[string][]float64 {
	out := make(map[string][]float64, len(b.Rooms))
	for _, r := range b.Rooms {
		out[r.ID] = r.Series
	}
	return out
}

func TestReadBuilding_CSV(t *testing.T) {
	path := writeFile(t, "house.csv", "R1,R2,C1\n10,20,300\n11,21.5,301\n12,22,302\n")

	b, err := NewSeriesReader(path).ReadBuilding()
	require.NoError(t, err)

	assert.Equal(t, "house", b.Name)
	require.Len(t, b.Rooms, 3)
	assert.Equal(t, radon.KindCellar, b.Rooms[2].Kind)
	assert.Equal(t, []float64{20, 21.5, 22}, b.Rooms[1].Series)
}

func TestReadBuilding_SemicolonWithIndexColumn(t *testing.T) {
	path := writeFile(t, "room.csv", "\"ID\";\"R1\"\n\"0\";\"120\"\n\"1\";\"98,5\"\n")

	b, err := NewSeriesReader(path).ReadBuilding()
	require.NoError(t, err)

	require.Len(t, b.Rooms, 1)
	assert.Equal(t, "R1", b.Rooms[0].ID)
	assert.Equal(t, []float64{120, 98.5}, b.Rooms[0].Series)
}

func TestReadBuilding_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"header only", "R1,R2\n", errors.CodeInvalidInput},
		{"empty cell", "R1,R2\n1,2\n3,\n", errors.CodeInvalidInput},
		{"short row", "R1,R2\n1,2\n3\n", errors.CodeInvalidInput},
		{"not a number", "R1,R2\n1,abc\n", errors.CodeInvalidInput},
		{"nan cell", "R1,R2\n1,NaN\n", errors.CodeInvalidInput},
		{"infinite cell", "R1,R2\n-Inf,2\n", errors.CodeInvalidInput},
		{"duplicate room", "R1,R1\n1,2\n", errors.CodeInvalidInput},
		{"no rooms", "ID\n1\n", errors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeriesReader(writeFile(t, "bad.csv", tt.content)).ReadBuilding()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestReadBuilding_MissingFile(t *testing.T) {
	_, err := NewSeriesReader(filepath.Join(t.TempDir(), "nope.xlsx")).ReadBuilding()
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestWriter_RoundTrip(t *testing.T) {
	config := testkit.DefaultRadonConfig()
	config.Hours = 60
	config.Cellars = 2
	want, err := testkit.NewRadonGenerator(config).GenerateBuilding()
	require.NoError(t, err)
	want.Rooms[0].Series[3] = 12.25

	for _, tc := range []struct{ file, sheet string }{
		{"survey.xlsx", ""},
		{"survey.xlsx", "Radon"},
		{"survey.csv", ""},
	} {
		t.Run(tc.file+"/"+tc.sheet, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, NewWriter(tc.sheet).WriteFile(path, want))

			got, err := NewSeriesReader(path, WithSheet(tc.sheet)).ReadBuilding()
			require.NoError(t, err)

			assert.Equal(t, "survey", got.Name)
			if diff := cmp.Diff(seriesByID(want), seriesByID(got)); diff != "" {
				t.Errorf("series mismatch (-want +got):\n%s", diff)
			}
			for i, r := range got.Rooms {
				assert.True(t, r.Equal(want.Rooms[i]), "room %d order", i)
			}
		})
	}
}

func TestWriter_RejectsRaggedBuilding(t *testing.T) {
	b, err := radon.NewBuilding("ragged", []*radon.Room{
		radon.NewRoom("R1", []float64{1, 2, 3}),
		radon.NewRoom("R2", []float64{1, 2}),
	})
	require.NoError(t, err)

	err = NewWriter("").WriteFile(filepath.Join(t.TempDir(), "x.csv"), b)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestExportRoom(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportRoom(&buf, radon.NewRoom("R3", []float64{100.9, 42})))
	assert.Equal(t, "ID;R3\n0;100\n1;42\n", buf.String())

	path := writeFile(t, "r3.csv", buf.String())
	b, err := NewSeriesReader(path).ReadBuilding()
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 42}, b.Rooms[0].Series)
}
