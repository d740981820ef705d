package batch

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/testutil"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []WordEntry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "one word per line",
			fileContent: `resist
apple
take off`,
			want: []WordEntry{
				{Word: "resist", Line: 1},
				{Word: "apple", Line: 2},
				{Word: "take off", Line: 3},
			},
		},
		{
			name: "comments and blank lines",
			fileContent: `# verbs
resist

  # nouns
  apple  
`,
			want: []WordEntry{
				{Word: "resist", Line: 2},
				{Word: "apple", Line: 5},
			},
		},
		{
			name:        "windows line endings and BOM",
			fileContent: "\ufeffresist\r\napple\r\n",
			want: []WordEntry{
				{Word: "resist", Line: 1},
				{Word: "apple", Line: 2},
			},
		},
		{
			name:        "duplicates kept",
			fileContent: "run\nrun\n",
			want: []WordEntry{
				{Word: "run", Line: 1},
				{Word: "run", Line: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "words.txt")
			testutil.CreateTestFile(t, path, []byte(tt.fileContent))

			got, err := ReadBatchFile(path)
			if err != nil {
				t.Fatalf("ReadBatchFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_NonExistent(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}
