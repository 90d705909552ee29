package io

import (
	"strings"
	"testing"

	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/timeline"
)

func f(v float64) *float64 { return &v }

func TestConvert(t *testing.T) {
	doc, err := ReadItems(strings.NewReader(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	items, excluded, err := Convert(doc, timeline.DefaultParams())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(items) != 2 || items[0].ID != "bach" || items[1].ID != "eruption" {
		t.Fatalf("items = %+v", items)
	}
	if len(excluded) != 1 || excluded[0] != "blink" {
		t.Errorf("excluded = %v, want [blink]", excluded)
	}
	if items[0].Kind != timeline.KindStandard || items[1].Kind != timeline.KindShortEvent {
		t.Errorf("kinds = %v, %v", items[0].Kind, items[1].Kind)
	}
	want := timeline.TextMetrics{NameChars: 10, SecondaryChars: 8, DateChars: 9}
	if items[0].Text != want {
		t.Errorf("bach text = %+v, want %+v", items[0].Text, want)
	}
}

func TestConvertRejects(t *testing.T) {
	tests := []struct {
		name string
		recs []Record
	}{
		{"missing id", []Record{{Name: "x", Start: f(1), End: f(2)}}},
		{"missing name", []Record{{ID: "x", Start: f(1), End: f(2)}}},
		{"missing start", []Record{{ID: "x", Name: "x", End: f(2)}}},
		{"end before start", []Record{{ID: "x", Name: "x", Start: f(5), End: f(2)}}},
		{"duplicate", []Record{
			{ID: "x", Name: "x", Start: f(1), End: f(20)},
			{ID: "x", Name: "y", Start: f(1), End: f(20)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Convert(Document{Items: tt.recs}, timeline.DefaultParams())
			if !errors.Is(err, errors.ErrCodeInvalidItem) {
				t.Errorf("err = %v, want INVALID_ITEM", err)
			}
		})
	}
}

func TestConvertZeroStart(t *testing.T) {
	doc := Document{Items: []Record{{ID: "epoch", Name: "Epoch", Start: f(0), End: f(10)}}}
	items, _, err := Convert(doc, timeline.DefaultParams())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(items) != 1 || items[0].Start != 0 {
		t.Errorf("items = %+v", items)
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		start, end float64
		want       string
	}{
		{1685, 1750, "1685–1750"},
		{-490, -479, "490 BC–479 BC"},
		{-30, 14, "30 BC–14"},
		{1914, 1914, "1914"},
		{1.5, 2.25, "1.5–2.25"},
	}
	for _, tt := range tests {
		if got := FormatRange(tt.start, tt.end); got != tt.want {
			t.Errorf("FormatRange(%g, %g) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestToItemWideText(t *testing.T) {
	rec := Record{ID: "edo", Name: "江戸", Start: f(1603), End: f(1868)}
	it := ToItem(rec, timeline.DefaultParams())
	if it.Text.NameChars != 4 {
		t.Errorf("NameChars = %d, want 4 display cells", it.Text.NameChars)
	}
}
