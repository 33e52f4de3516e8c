// Package casebook runs YAML files of compile and optimize cases and
// reports which ones produce their expected SQL.
//
// A casebook looks like:
//
//	name: orders
//	catalog: shop.cue
//	identifiers:
//	  fold: lower
//	cases:
//	  - name: qualified total
//	    compile:
//	      ref: Orders::Total
//	      command: f
//	    expect: orders.total
//	  - name: strip qualifier
//	    optimize: SELECT Orders.id FROM Orders
//	    expect: SELECT id FROM Orders
//
// Reports have a deterministic text form for golden comparison.
package casebook
