package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParsePublicationDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr error
	}{
		{
			name:  "date only is midnight UTC",
			value: "2024-01-01",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC 3339 keeps its offset",
			value: "2024-02-01T10:30:00+02:00",
			want:  time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "date and time without zone",
			value: "2024-03-05 09:15",
			want:  time.Date(2024, 3, 5, 9, 15, 0, 0, time.UTC),
		},
		{
			name:  "long English form",
			value: "July 4, 2023",
			want:  time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			value: "  2024-01-01\n",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			value:   "",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "garbage",
			value:   "next tuesday",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible day",
			value:   "2024-02-30",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePublicationDate(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePublicationDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePublicationDate(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePublicationDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "iso tokens", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month greedy match", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short forms", format: "M/D/YY", want: "1/2/06"},
		{name: "bracket literal", format: "[Posted] MMM D", want: "Posted Jan 2"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[oops YYYY", wantErr: ErrInvalidDateFormat},
		{
			name:    "too long",
			format:  "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{format: DefaultDateFormat, want: "February 1, 2024"},
		{format: "iso", want: "2024-02-01"},
		{format: "EUROPEAN", want: "01/02/2024"},
		{format: "DD.MM.YYYY", want: "01.02.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, err := Format(day, tt.format)
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
