package persistence

import (
	"reflect"
	"testing"
)

func TestPendingMigrationsSkipsApplied(t *testing.T) {
	tests := []struct {
		name      string
		filenames []string
		applied   map[string]bool
		want      []string
	}{
		{
			name:      "fresh database runs everything in order",
			filenames: []string{"002_reports.sql", "001_init.sql"},
			applied:   map[string]bool{},
			want:      []string{"001_init.sql", "002_reports.sql"},
		},
		{
			name:      "restart runs nothing",
			filenames: []string{"001_init.sql"},
			applied:   map[string]bool{"001_init.sql": true},
			want:      []string{},
		},
		{
			name:      "new file after a restart runs alone",
			filenames: []string{"001_init.sql", "002_reports.sql"},
			applied:   map[string]bool{"001_init.sql": true},
			want:      []string{"002_reports.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pendingMigrations(tt.filenames, tt.applied)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pendingMigrations() = %v, want %v", got, tt.want)
			}
		})
	}
}
