package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ana Rodriguez", "Ana R."},
		{"Ben", "Ben"},
		{"Mary Jane Watson", "Mary W."},
		{"  Omar   el-Sayed  ", "Omar e."},
		{"", ""},
		{"Žofia Király", "Žofia K."},
	}

	for _, tt := range tests {
		u := User{Name: tt.name}
		if got := u.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
