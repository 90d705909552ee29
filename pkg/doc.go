// Package pkg holds the timelane libraries.
//
// # Overview
//
// Timelane lays out timed items (lifespans, reigns, events) on a horizontal
// axis. Items are packed into rows so that no two bars overlap, short events
// get floating labels in the gaps between rows, and a final audit resolves
// label collisions. The output is a renderer-neutral layout document.
//
// # Architecture
//
//	item document (JSON/YAML)
//	         ↓
//	    [io] package (decode, validate, convert)
//	         ↓
//	    [timeline] package (pack, place labels, audit)
//	         ↓
//	    [cache] package (content-addressed layout cache)
//	         ↓
//	    layout document (JSON)
//
// [pipeline] runs these stages for both the CLI and [server]. [config]
// loads settings from TOML and the environment, [observability] exposes
// hooks and Prometheus metrics, and [errors] carries coded errors that map
// to exit messages and HTTP statuses.
//
// # Quick Start
//
//	doc, _ := io.ImportItems("composers.yaml")
//	items, excluded, _ := io.Convert(doc, timeline.DefaultParams())
//	res := timeline.Compute(items, timeline.DefaultParams())
//	_ = io.ExportLayout(io.NewLayoutDocument(res, timeline.DefaultParams(), excluded), "composers.layout.json")
//
// [io]: github.com/matzehuels/timelane/pkg/io
// [timeline]: github.com/matzehuels/timelane/pkg/timeline
// [cache]: github.com/matzehuels/timelane/pkg/cache
// [pipeline]: github.com/matzehuels/timelane/pkg/pipeline
// [server]: github.com/matzehuels/timelane/pkg/server
// [config]: github.com/matzehuels/timelane/pkg/config
// [observability]: github.com/matzehuels/timelane/pkg/observability
// [errors]: github.com/matzehuels/timelane/pkg/errors
package pkg
