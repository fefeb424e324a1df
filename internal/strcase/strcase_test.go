package strcase

import "testing"

func TestToCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"PascalCase", "PascalCase", "pascalCase"},
		{"UserID", "UserID", "userID"},
		{"SingleLower", "word", "word"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToCamelCase(tt.input); got != tt.want {
				t.Fatalf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPascalCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Snake", "account_id", "AccountId"},
		{"SingleWord", "memo", "Memo"},
		{"AlreadyPascal", "AccountId", "AccountId"},
		{"Camel", "accountId", "AccountId"},
		{"DigitBoundary", "sha384_hash", "Sha384Hash"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToPascalCase(tt.input); got != tt.want {
				t.Fatalf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "CamelCase", "camel_case"},
		{"SingleWord", "Camel", "camel"},
		{"Leading", "URLValue", "url_value"},
		{"TrailingUpper", "UserID", "user_id"},
		{"AcronymOnly", "URL", "url"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToSnakeCase(tt.input); got != tt.want {
				t.Fatalf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToUpperSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Camel", "thresholdKey", "THRESHOLD_KEY"},
		{"Pascal", "KeyList", "KEY_LIST"},
		{"AlreadySnake", "contract_id", "CONTRACT_ID"},
		{"SingleWord", "ed25519", "ED25519"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToUpperSnakeCase(tt.input); got != tt.want {
				t.Fatalf("ToUpperSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
