package annotation

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectives(t *testing.T) {
	src := `package p

const (
	// NotFound is returned for unknown ids.
	//httperr:detail status = 404, message = "resource not found"
	//lint:ignore U1000 kept for clients
	//httperr:other anything goes here
	NotFound = 1 //httperr:detail message = "trailing"
	/* //httperr:detail status = 1 */
	Other = 2
)
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	var blocks []Block
	for _, c := range f.Comments {
		blocks = append(blocks, Directives(fset, c)...)
	}

	require.Len(t, blocks, 3)
	assert.Equal(t, "detail", blocks[0].Name)
	assert.Equal(t, `status = 404, message = "resource not found"`, blocks[0].Payload)
	assert.Equal(t, 5, blocks[0].Pos.Line)
	assert.Equal(t, "other", blocks[1].Name)
	assert.Equal(t, "detail", blocks[2].Name)
	assert.Equal(t, `message = "trailing"`, blocks[2].Payload)
}

func TestDirectivesNameSeparator(t *testing.T) {
	src := "package p\n\n//httperr:detail\tstatus = 404\nconst A = 1\n\n//httperr:detail\nconst B = 2\n"
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	var blocks []Block
	for _, c := range f.Comments {
		blocks = append(blocks, Directives(fset, c)...)
	}

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockDetail, blocks[0].Name)
	assert.Equal(t, "status = 404", blocks[0].Payload)
	assert.Equal(t, len(Prefix)+len(BlockDetail)+2, blocks[0].PayloadPos.Column)

	entries, err := blocks[0].Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Expr("404"), entries[0].Value)

	assert.Equal(t, BlockDetail, blocks[1].Name)
	assert.Empty(t, blocks[1].Payload)
}

func TestDirectivesNilGroups(t *testing.T) {
	assert.Empty(t, Directives(token.NewFileSet(), nil, nil))
}

func TestEntries(t *testing.T) {
	type testCase struct {
		name    string
		payload string
		want    []Entry
		wantErr string
	}

	kv := func(k, v string) Entry { return Entry{Key: k, Value: Expr(v)} }

	cases := []testCase{
		{
			name:    "numeric and string literals",
			payload: `status = 404, message = "resource not found"`,
			want:    []Entry{kv("status", "404"), kv("message", `"resource not found"`)},
		},
		{
			name:    "order irrelevant",
			payload: `message = "boom", status = 500`,
			want:    []Entry{kv("message", `"boom"`), kv("status", "500")},
		},
		{
			name:    "qualified constant",
			payload: `status = http.StatusNotFound`,
			want:    []Entry{kv("status", "http.StatusNotFound")},
		},
		{
			name:    "commas inside string and call",
			payload: `message = fmt.Sprint("a, b", "c"), status = 400`,
			want:    []Entry{kv("message", `fmt.Sprint("a, b", "c")`), kv("status", "400")},
		},
		{
			name:    "constant expression",
			payload: `status = 400 + 4`,
			want:    []Entry{kv("status", "400 + 4")},
		},
		{
			name:    "raw string",
			payload: "message = `quoted \"text\"`",
			want:    []Entry{kv("message", "`quoted \"text\"`")},
		},
		{
			name:    "trailing comma",
			payload: `status = 404,`,
			want:    []Entry{kv("status", "404")},
		},
		{
			name:    "trailing comment",
			payload: `status = 404 // see RFC 9110`,
			want:    []Entry{kv("status", "404")},
		},
		{
			name:    "trailing comment after list",
			payload: `status = 404, message = "a, b"   // see RFC 9110`,
			want:    []Entry{kv("status", "404"), kv("message", `"a, b"`)},
		},
		{
			name:    "trailing block comment",
			payload: `status = http.StatusNotFound /* 404 */`,
			want:    []Entry{kv("status", "http.StatusNotFound")},
		},
		{
			name:    "unknown keys kept",
			payload: `status = 404, retry = true`,
			want:    []Entry{kv("status", "404"), kv("retry", "true")},
		},
		{
			name:    "empty payload",
			payload: ``,
			want:    nil,
		},
		{
			name:    "missing assign",
			payload: `status 404`,
			wantErr: "expected '=' after status",
		},
		{
			name:    "missing key",
			payload: `404 = status`,
			wantErr: "expected key",
		},
		{
			name:    "empty value",
			payload: `status = , message = "x"`,
			wantErr: "empty value for status",
		},
		{
			name:    "unterminated string",
			payload: `message = "oops`,
			wantErr: "string literal not terminated",
		},
		{
			name:    "unbalanced open",
			payload: `status = (404`,
			wantErr: "unbalanced brackets",
		},
		{
			name:    "unbalanced close",
			payload: `status = 404)`,
			wantErr: "unbalanced )",
		},
		{
			name:    "not an expression",
			payload: `status = 4 4`,
			wantErr: "not a Go expression",
		},
		{
			name:    "explicit semicolon",
			payload: `status = 404; message = "x"`,
			wantErr: "not a Go expression",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Block{Name: BlockDetail, Payload: tc.payload}.Entries()
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				var ae *Error
				assert.ErrorAs(t, err, &ae)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.Equal(t, tc.want[i].Key, got[i].Key)
				assert.Equal(t, tc.want[i].Value, got[i].Value)
			}
		})
	}
}

func TestEntriesErrorPosition(t *testing.T) {
	base := token.Position{Filename: "codes.go", Line: 7, Column: 19}
	_, err := Block{Name: BlockDetail, Payload: `status 404`, PayloadPos: base}.Entries()

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "codes.go", ae.Pos.Filename)
	assert.Equal(t, 7, ae.Pos.Line)
	assert.Equal(t, 26, ae.Pos.Column)
	assert.Contains(t, err.Error(), "codes.go:7:26")
}
