// Package main provides the entry point for the leadgen CLI.
//
// leadgen turns a short description of a business and its target customers
// into a lead generation report. It researches leads across five analyst
// categories, curates and enriches the results, and compiles per-category
// briefings into a final Markdown report.
//
// Usage:
//
//	leadgen run --target "independent bakeries" --channels email
//	leadgen serve --addr :8000
//
// See --help for all available options.
package main

func main() {
	Execute()
}
