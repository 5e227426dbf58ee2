package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/avelling/resman/internal/domain"
	"github.com/avelling/resman/internal/logger"
)

type fakeStore struct {
	inserted  []domain.Resource
	insertErr error
}

func (f *fakeStore) Insert(_ context.Context, res domain.Resource) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, res)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]domain.Resource, error) {
	return f.inserted, nil
}

func (f *fakeStore) SetActive(_ context.Context, _ string, _ bool) (domain.Resource, error) {
	return domain.Resource{}, domain.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, _ string) error {
	return domain.ErrNotFound
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantImported int
		wantErrors   []string
	}{
		{
			name:         "valid lines with one bad line",
			input:        "http://a.com:user1:pass1\nbadline\nhttp://b.com:user2:pass2",
			wantImported: 2,
			wantErrors:   []string{"Line 2: invalid format (expected url:login:pass)"},
		},
		{
			name:         "all fields blank after split",
			input:        " : : ",
			wantImported: 0,
			wantErrors:   []string{"Line 1: empty fields"},
		},
		{
			name:         "empty file",
			input:        "",
			wantImported: 0,
			wantErrors:   []string{},
		},
		{
			name:         "whitespace only file",
			input:        "  \n\n  \n",
			wantImported: 0,
			wantErrors:   []string{},
		},
		{
			name:         "url with scheme and port",
			input:        "https://a.com:8443/path:user:pass",
			wantImported: 1,
			wantErrors:   []string{},
		},
		{
			name:         "single colon is invalid",
			input:        "http-a.com:user",
			wantImported: 0,
			wantErrors:   []string{"Line 1: invalid format (expected url:login:pass)"},
		},
		{
			name:         "no colon is invalid",
			input:        "just some text",
			wantImported: 0,
			wantErrors:   []string{"Line 1: invalid format (expected url:login:pass)"},
		},
		{
			name:         "blank lines skipped but numbering preserved",
			input:        "http://a.com:u:p\n\nbad",
			wantImported: 1,
			wantErrors:   []string{"Line 3: invalid format (expected url:login:pass)"},
		},
		{
			name:         "crlf line endings",
			input:        "http://a.com:u:p\r\nhttp://b.com:u2:p2\r\n",
			wantImported: 2,
			wantErrors:   []string{},
		},
		{
			name:         "partially empty fields",
			input:        "http://a.com::pass",
			wantImported: 0,
			wantErrors:   []string{"Line 1: empty fields"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{}
			imp := New(fs, logger.New("error", false))

			rep, err := imp.Run(context.Background(), []byte(tt.input))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if rep.Imported != tt.wantImported {
				t.Errorf("Run() imported = %d, want %d", rep.Imported, tt.wantImported)
			}
			if !reflect.DeepEqual(rep.Errors, tt.wantErrors) {
				t.Errorf("Run() errors = %v, want %v", rep.Errors, tt.wantErrors)
			}
			if len(fs.inserted) != tt.wantImported {
				t.Errorf("Run() inserted %d records, want %d", len(fs.inserted), tt.wantImported)
			}
		})
	}
}

func TestRunInvalidUTF8(t *testing.T) {
	fs := &fakeStore{}
	imp := New(fs, logger.New("error", false))

	_, err := imp.Run(context.Background(), []byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Run() error = %v, want ErrDecode", err)
	}
	if len(fs.inserted) != 0 {
		t.Errorf("Run() inserted %d records on decode failure, want 0", len(fs.inserted))
	}
}

func TestRunDeterministic(t *testing.T) {
	input := []byte("http://a.com:u:p\nbad\nhttp://b.com:u2:p2\n : : ")

	var first Report
	for i := 0; i < 3; i++ {
		imp := New(&fakeStore{}, logger.New("error", false))
		rep, err := imp.Run(context.Background(), input)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if i == 0 {
			first = rep
			continue
		}
		if rep.Imported != first.Imported || !reflect.DeepEqual(rep.Errors, first.Errors) {
			t.Errorf("Run() not deterministic: got %+v, want %+v", rep, first)
		}
	}
}

func TestRunStoreFailurePropagates(t *testing.T) {
	boom := errors.New("store down")
	fs := &fakeStore{insertErr: boom}
	imp := New(fs, logger.New("error", false))

	rep, err := imp.Run(context.Background(), []byte("http://a.com:u:p"))
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped store error", err)
	}
	if rep.Imported != 0 {
		t.Errorf("Run() imported = %d before failure, want 0", rep.Imported)
	}
}

func TestRunRecordFields(t *testing.T) {
	fs := &fakeStore{}
	imp := New(fs, logger.New("error", false))

	_, err := imp.Run(context.Background(), []byte("  http://a.com : user : pass  "))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(fs.inserted) != 1 {
		t.Fatalf("Run() inserted %d records, want 1", len(fs.inserted))
	}

	res := fs.inserted[0]
	if res.URL != "http://a.com" || res.Login != "user" || res.Password != "pass" {
		t.Errorf("Run() record fields = %q/%q/%q, want trimmed values", res.URL, res.Login, res.Password)
	}
	if res.ID == "" || !res.IsActive || res.CreatedAt.IsZero() {
		t.Errorf("Run() record missing generated fields: %+v", res)
	}
}

func TestSplitRight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two colons", "a:b:c", []string{"a", "b", "c"}},
		{"extra colons stay left", "https://a.com:8443:user:pass", []string{"https://a.com:8443", "user", "pass"}},
		{"one colon", "a:b", []string{"a", "b"}},
		{"no colon", "abc", []string{"abc"}},
		{"empty segments", ": :", []string{"", " ", ""}},
		{"trailing colon", "a:b:", []string{"a", "b", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitRight(tt.input, ':', 3)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRight(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
