package repository

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults", PageRequest{}, 1, 10},
		{"negative page", PageRequest{Page: -3, Limit: 20}, 1, 20},
		{"zero limit", PageRequest{Page: 2}, 2, 10},
		{"capped limit", PageRequest{Page: 1, Limit: 5000}, 1, 100},
		{"within bounds", PageRequest{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(10, 100)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize() = {%d %d}, want {%d %d}", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := PageRequest{Page: 3, Limit: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestNewPageMetaCeil(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact division", 100, 10, 10},
		{"remainder rounds up", 101, 10, 11},
		{"single partial page", 3, 10, 1},
		{"empty", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPageMeta(PageRequest{Page: 1, Limit: tt.limit}, tt.total)
			if meta.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.wantPages)
			}
			if meta.TotalItems != tt.total {
				t.Errorf("TotalItems = %d, want %d", meta.TotalItems, tt.total)
			}
		})
	}
}
