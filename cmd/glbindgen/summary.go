package main

import (
	"sort"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/griffnb/glbindgen/internal/domain"
)

// namespaceSummary counts what one namespace holds. Core counts the
// functions of the un-suffixed section.
type namespaceSummary struct {
	Name      string
	Constants int
	Enums     int
	Functions int
	Core      int
	Sections  []string
}

func summarize(model *domain.Model) []namespaceSummary {
	out := make([]namespaceSummary, 0, len(model.Namespaces))
	for _, ns := range model.Namespaces {
		s := namespaceSummary{Name: ns.Name, Constants: len(ns.Constants)}
		if base := ns.Base(); base != nil {
			s.Core = len(base.Functions)
		}
		for _, sec := range ns.Sections {
			s.Enums += len(sec.Enums)
			s.Functions += len(sec.Functions)
			if sec.Suffix != "" {
				s.Sections = append(s.Sections, sec.Suffix)
			}
		}
		out = append(out, s)
	}
	return out
}

// countDiagnostics returns the diagnostic count per kind, sorted by kind.
func countDiagnostics(model *domain.Model) [][2]string {
	counts := make(map[domain.DiagnosticKind]int)
	for _, d := range model.Diagnostics {
		counts[d.Kind]++
	}
	out := make([][2]string, 0, len(counts))
	for kind, n := range counts {
		out = append(out, [2]string{string(kind), strconv.Itoa(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func printSummary(model *domain.Model) {
	pterm.Info.Printf("API %s: %d namespaces\n", model.API, len(model.Namespaces))
	for _, s := range summarize(model) {
		pterm.Printf("  %s %s constants=%d enums=%d functions=%d (core %d) vendor sections=%d\n",
			pterm.Gray("→"),
			pterm.LightGreen(s.Name),
			s.Constants, s.Enums, s.Functions, s.Core, len(s.Sections))
	}
	for _, row := range countDiagnostics(model) {
		pterm.Warning.Printf("%s: %s\n", row[0], row[1])
	}
}

func printDiagnostics(model *domain.Model) {
	for _, d := range model.Diagnostics {
		pterm.Printf("  %s %s %s\n", pterm.Yellow(string(d.Kind)), pterm.White(d.Subject), pterm.Gray(d.Detail))
	}
}
