package bills

import (
	"errors"
	"testing"
)

func TestParseObjectKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want ObjectKeyParts
	}{
		{
			name: "standard upload key",
			key:  "users/u-123/bills/electricity/march.pdf",
			want: ObjectKeyParts{OwnerID: "u-123", UtilityCategory: "electricity", FileName: "march.pdf"},
		},
		{
			name: "file name with dots and dashes",
			key:  "users/google-104/bills/gas/bord-gais.2024-03.pdf",
			want: ObjectKeyParts{OwnerID: "google-104", UtilityCategory: "gas", FileName: "bord-gais.2024-03.pdf"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseObjectKey(tc.key)
			if err != nil {
				t.Fatalf("ParseObjectKey(%q) error: %v", tc.key, err)
			}
			if got != tc.want {
				t.Fatalf("ParseObjectKey(%q) = %+v, want %+v", tc.key, got, tc.want)
			}
		})
	}
}

func TestParseObjectKeyMalformed(t *testing.T) {
	keys := []string{
		"",
		"march.pdf",
		"users/u-123/bills/electricity",
		"users/u-123/bills/electricity/nested/march.pdf",
		"accounts/u-123/bills/electricity/march.pdf",
		"users/u-123/uploads/electricity/march.pdf",
		"users//bills/electricity/march.pdf",
		"users/u-123/bills//march.pdf",
		"users/u-123/bills/electricity/",
	}
	for _, key := range keys {
		if _, err := ParseObjectKey(key); !errors.Is(err, ErrMalformedKey) {
			t.Errorf("ParseObjectKey(%q) error = %v, want ErrMalformedKey", key, err)
		}
	}
}
