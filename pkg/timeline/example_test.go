package timeline_test

import (
	"fmt"

	"github.com/matzehuels/timelane/pkg/timeline"
)

func ExampleCompute() {
	p := timeline.DefaultParams()
	items := []timeline.Item{
		{ID: "bach", Start: 1685, End: 1750, Text: timeline.TextMetrics{NameChars: 10, DateChars: 9}},
		{ID: "handel", Start: 1685, End: 1759, Text: timeline.TextMetrics{NameChars: 13, DateChars: 9}},
		{ID: "eruption", Start: 1707, End: 1710, Kind: timeline.KindShortEvent,
			Text: timeline.TextMetrics{NameChars: 8, DateChars: 9}},
	}

	res := timeline.Compute(items, p)
	for _, pl := range res.Placements {
		if pl.HasLabel() {
			fmt.Printf("%s: bar row %d, label row %.1f\n", pl.ItemID, pl.BarRow, *pl.LabelRow)
			continue
		}
		fmt.Printf("%s: bar row %d\n", pl.ItemID, pl.BarRow)
	}
	fmt.Println("rows:", res.TotalRows)
	// Output:
	// bach: bar row 0
	// handel: bar row 1
	// eruption: bar row 2, label row 1.5
	// rows: 3
}

func ExampleSegmentsIntersect() {
	a1, a2 := timeline.Point{X: 0, Y: 0}, timeline.Point{X: 10, Y: 1}
	b1, b2 := timeline.Point{X: 0, Y: 1}, timeline.Point{X: 10, Y: 0}
	fmt.Println(timeline.SegmentsIntersect(a1, a2, b1, b2))
	fmt.Println(timeline.SegmentsIntersect(a1, a2, a1, b2))
	// Output:
	// true
	// false
}
