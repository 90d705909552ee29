package timeline

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name       string
		category   string
		start, end float64
		want       Kind
	}{
		{"short event", "event", 1914, 1918, KindShortEvent},
		{"event at threshold", "event", 1900, 1915, KindStandard},
		{"long event", "event", 1337, 1453, KindStandard},
		{"short person", "person", 1900, 1905, KindStandard},
		{"no category", "", 0, 1, KindStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.category, tt.start, tt.end, p); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterExcluded(t *testing.T) {
	p := DefaultParams()
	items := []Item{
		{ID: "keep", Start: 0, End: 3},
		{ID: "drop", Start: 10, End: 12},
		{ID: "keep2", Start: 20, End: 40},
	}
	kept, dropped := FilterExcluded(items, p)
	if len(kept) != 2 || kept[0].ID != "keep" || kept[1].ID != "keep2" {
		t.Errorf("kept = %v, want [keep keep2]", kept)
	}
	if len(dropped) != 1 || dropped[0] != "drop" {
		t.Errorf("dropped = %v, want [drop]", dropped)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr bool
	}{
		{"valid", []Item{{ID: "a", Start: 1, End: 2}, {ID: "b", Start: 0, End: 0}}, false},
		{"empty id", []Item{{Start: 1, End: 2}}, true},
		{"duplicate id", []Item{{ID: "a", End: 1}, {ID: "a", End: 2}}, true},
		{"end before start", []Item{{ID: "a", Start: 5, End: 4}}, true},
		{"nan", []Item{{ID: "a", Start: math.NaN(), End: 4}}, true},
		{"inf", []Item{{ID: "a", Start: 0, End: math.Inf(1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindStandard, KindShortEvent} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("bogus"); err == nil {
		t.Error("ParseKind(bogus) should fail")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}

	mutations := map[string]func(*Params){
		"zero scale":         func(p *Params) { p.PixelsPerUnit = 0 },
		"zero row height":    func(p *Params) { p.RowHeight = 0 },
		"negative margin":    func(p *Params) { p.LabelMargin = -1 },
		"negative budget":    func(p *Params) { p.MaxRelocations = -1 },
		"negative scan":      func(p *Params) { p.RelocationScanLimit = -2 },
		"negative exclusion": func(p *Params) { p.ExclusionThreshold = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestPixelMapping(t *testing.T) {
	p := DefaultParams()
	if got := p.RowY(0); got != 20 {
		t.Errorf("RowY(0) = %v, want 20", got)
	}
	if got := p.RowY(1.5); got != 80 {
		t.Errorf("RowY(1.5) = %v, want 80", got)
	}
	if got := p.AxisX(1710, 1700); got != 40 {
		t.Errorf("AxisX(1710, 1700) = %v, want 40", got)
	}
}
